package domain

import "time"

// BookingStatus represents the status of a booking aggregate
type BookingStatus string

const (
	BookingStatusDraft     BookingStatus = "draft"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// Booking groups one or more reservations of a single customer/salon pair
// into one payable unit
type Booking struct {
	ID             string
	SalonID        string
	CustomerID     string
	ReservationIDs []string // non-empty, ids unique within the list

	TotalAmount    int64
	DiscountAmount int64
	FinalAmount    int64 // always TotalAmount - DiscountAmount
	PaymentMethod  string
	PaymentStatus  PaymentStatus
	Notes          *string

	Status BookingStatus

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

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted || b.Status == BookingStatusNoShow
}

// CanBeCancelled returns true if the booking is in a cancellable state
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusDraft || b.Status == BookingStatusConfirmed
}

// AmountsConsistent verifies the booking money invariant:
// finalAmount == totalAmount - discountAmount, all non-negative
func (b *Booking) AmountsConsistent() bool {
	return b.TotalAmount >= 0 &&
		b.DiscountAmount >= 0 &&
		b.FinalAmount >= 0 &&
		b.FinalAmount == b.TotalAmount-b.DiscountAmount
}

// ValidPaymentStatus reports whether s is one of the known payment statuses
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}
