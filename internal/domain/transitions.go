package domain

import "time"

// allowedTransitions таблица допустимых переходов статуса записи.
// Терминальные статусы (cancelled, completed, no_show) переходов не имеют.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCancelled: {},
	StatusCompleted: {},
	StatusNoShow:    {},
}

// CanTransition reports whether a reservation may move from one status to
// another according to the lifecycle table
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanCancelAt проверяет, допустима ли отмена записи в момент now:
// статус должен позволять отмену, и до начала должно оставаться больше
// MinCancelNoticeMinutes
func (r *Reservation) CanCancelAt(now time.Time) bool {
	if !r.CanBeCancelled() {
		return false
	}
	return r.StartTime.Sub(now) > time.Duration(MinCancelNoticeMinutes)*time.Minute
}

// CanMarkNoShowAt проверяет, допустима ли отметка no-show в момент now.
// Неявка не может быть зафиксирована до окончания записи.
func (r *Reservation) CanMarkNoShowAt(now time.Time) bool {
	if !CanTransition(r.Status, StatusNoShow) {
		return false
	}
	return !now.Before(r.EndTime)
}
