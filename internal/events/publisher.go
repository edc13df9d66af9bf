// Package events исходящие события жизненного цикла записей.
// Публикация best-effort: сбой доставки логируется вызывающей стороной,
// но никогда не проваливает основную операцию.
package events

import (
	"context"
	"time"
)

// Типы событий жизненного цикла
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationCancelled = "reservation.cancelled"
	TypeReservationCompleted = "reservation.completed"
	TypeReservationNoShow    = "reservation.no_show"
	TypeBookingCreated       = "booking.created"
	TypeBookingCancelled     = "booking.cancelled"
)

// Event одно событие аудита
type Event struct {
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurredAt"`
	ReservationID string    `json:"reservationId,omitempty"`
	BookingID     string    `json:"bookingId,omitempty"`
	SalonID       string    `json:"salonId"`
	CustomerID    string    `json:"customerId"`
	ActorID       string    `json:"actorId"`
	RefundAmount  *int64    `json:"refundAmount,omitempty"`
}

// Publisher интерфейс публикации событий
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
