package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

// Reservation represents a single scheduled service occurrence between
// a customer, a staff member and a service
type Reservation struct {
	ID         string
	SalonID    string
	CustomerID string
	StaffID    string
	ServiceID  string

	StartTime time.Time
	EndTime   time.Time

	// Denormalized data for history
	ServiceName string

	TotalAmount   int64 // minor currency units
	DepositAmount *int64
	Paid          bool
	Notes         *string

	Status ReservationStatus

	// Status payload: each field set only while the matching status is current
	ConfirmedAt        *time.Time
	ConfirmedBy        *string
	CancelledAt        *time.Time
	CancelledBy        *string
	CancellationReason *string
	CompletedAt        *time.Time
	CompletedBy        *string
	NoShowAt           *time.Time
	NoShowBy           *string

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
}

// IsTerminal returns true if the reservation reached a state that permits no
// further transitions
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted || r.Status == StatusNoShow
}

// OccupiesSlot returns true if the reservation still blocks its time slot.
// Cancelled reservations release the slot; completed and no-show ones keep it
// occupied in the past.
func (r *Reservation) OccupiesSlot() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation is in a cancellable state
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeUpdated returns true if the reservation attributes may still change
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// Duration returns the scheduled length of the reservation
func (r *Reservation) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Overlaps reports whether two half-open intervals [s1, e1) and [s2, e2)
// intersect. Touching endpoints do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ReservationFilter фильтр для поиска бронирований
type ReservationFilter struct {
	SalonID         *string
	CustomerID      *string
	StaffID         *string
	Status          *ReservationStatus
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	IncludeTerminal bool       // Включать ли отменённые/завершённые/no-show
}

// Pagination параметры постраничного вывода
type Pagination struct {
	Limit  uint64
	Offset uint64
}
