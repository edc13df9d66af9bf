package get_available_slots

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
)

// generateSlotStarts генерирует все кандидатные слоты дня с шагом,
// равным длительности услуги: от начала рабочего дня мастера до момента,
// после которого слот уже не помещается до закрытия.
// Для свободного окна 09:00-12:00 и услуги на 60 минут это 09:00, 10:00, 11:00 -
// отдельные слоты, а не одно трёхчасовое окно.
func generateSlotStarts(
	staffID string,
	schedule catalogservice.DaySchedule,
	date time.Time,
	durationMinutes int,
) ([]domain.AvailableSlot, error) {
	if !schedule.IsWorking || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return []domain.AvailableSlot{}, nil
	}

	openAt, err := timeOnDay(date, *schedule.OpenTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := timeOnDay(date, *schedule.CloseTime)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(durationMinutes) * time.Minute

	slots := make([]domain.AvailableSlot, 0)
	for current := openAt; !current.Add(duration).After(closeAt); current = current.Add(duration) {
		slots = append(slots, domain.AvailableSlot{
			StaffID:   staffID,
			StartTime: current,
			EndTime:   current.Add(duration),
		})
	}

	return slots, nil
}

// filterAvailable отбрасывает слоты, пересекающиеся с существующими записями.
// Отменённые записи слот не занимают. Граничащие интервалы не конфликтуют
// (полуоткрытые интервалы).
func filterAvailable(slots []domain.AvailableSlot, existing []*domain.Reservation) []domain.AvailableSlot {
	available := make([]domain.AvailableSlot, 0, len(slots))

	for _, slot := range slots {
		if !overlapsAny(slot, existing) {
			available = append(available, slot)
		}
	}

	return available
}

func overlapsAny(slot domain.AvailableSlot, existing []*domain.Reservation) bool {
	for _, res := range existing {
		if !res.OccupiesSlot() {
			continue
		}
		if domain.Overlaps(slot.StartTime, slot.EndTime, res.StartTime, res.EndTime) {
			return true
		}
	}
	return false
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

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
