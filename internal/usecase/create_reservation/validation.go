package create_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID == "" {
		return fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}
	if req.StaffID == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if req.ActorID == "" {
		return fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// mapDomainValidationErr конвертирует доменные ошибки валидации в ошибки usecase
func mapDomainValidationErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrPastTimeNotAllowed):
		return fmt.Errorf("%w: %v", ErrPastTimeNotAllowed, err)
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	case errors.Is(err, domain.ErrInvalidAmount):
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	default:
		return err
	}
}

// validateWithinWorkingHours проверяет, что интервал [start, end) укладывается
// в рабочие часы мастера в этот день
func validateWithinWorkingHours(schedule catalogservice.DaySchedule, start, end time.Time) error {
	if !schedule.IsWorking || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return ErrStaffNotWorking
	}

	openAt, err := timeOnDay(start, *schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open time in schedule: %v", ErrInternal, err)
	}
	closeAt, err := timeOnDay(start, *schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close time in schedule: %v", ErrInternal, err)
	}

	if start.Before(openAt) || end.After(closeAt) {
		return ErrOutsideWorkingHours
	}

	return nil
}

// timeOnDay собирает момент времени из даты day и времени hhmm ("09:00")
func timeOnDay(day time.Time, hhmm string) (time.Time, error) {
	parsed, err := time.Parse(domain.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

// hasConflict проверяет пересечение кандидата [start, end) с существующими
// записями мастера. Отменённые записи слот не занимают.
func hasConflict(start, end time.Time, existing []*domain.Reservation) bool {
	for _, res := range existing {
		if !res.OccupiesSlot() {
			continue
		}
		if domain.Overlaps(start, end, res.StartTime, res.EndTime) {
			return true
		}
	}
	return false
}
