package create_booking

import (
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID        string   `json:"salonId"`
	CustomerID     string   `json:"customerId"`
	ReservationIDs []string `json:"reservationIds"`
	DiscountAmount int64    `json:"discountAmount,omitempty"`
	PaymentMethod  string   `json:"paymentMethod"`
	Notes          *string  `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBookingRequest) ToServiceRequest(actorID string) *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		SalonID:        r.SalonID,
		CustomerID:     r.CustomerID,
		ActorID:        actorID,
		ReservationIDs: r.ReservationIDs,
		DiscountAmount: r.DiscountAmount,
		PaymentMethod:  r.PaymentMethod,
		Notes:          r.Notes,
	}
}
