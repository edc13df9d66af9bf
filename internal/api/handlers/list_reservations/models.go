package list_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/service/reservations/models"
)

// ParseQuery разбирает query-параметры списка записей.
//
// Поддерживаются: salonId, customerId, staffId, status, startDate, endDate
// (YYYY-MM-DD), includeTerminal, limit, offset.
func ParseQuery(query url.Values) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{}

	if v := query.Get("salonId"); v != "" {
		req.SalonID = &v
	}
	if v := query.Get("customerId"); v != "" {
		req.CustomerID = &v
	}
	if v := query.Get("staffId"); v != "" {
		req.StaffID = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("startDate"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}
	if v := query.Get("endDate"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		// Конец периода включает весь указанный день
		end := date.AddDate(0, 0, 1)
		req.EndDate = &end
	}

	if v := query.Get("includeTerminal"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeTerminal = include
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	return req, nil
}
