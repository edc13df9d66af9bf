package get_customer_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonID := vars["salonId"]
	customerID := vars["customerId"]

	req := &models.GetCustomerBookingsRequest{
		SalonID:    salonID,
		CustomerID: customerID,
	}

	query := r.URL.Query()
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/customers/{id}/bookings - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/customers/{id}/bookings - Invalid offset: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.Offset = offset
	}

	list, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/customers/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /salons/{id}/customers/{id}/bookings - Failed to list bookings: customer_id=%s, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/customers/{id}/bookings - Listed %d bookings: customer_id=%s",
		len(list.Bookings), customerID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
