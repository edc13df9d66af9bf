package cancel_booking

import (
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actorID string) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		ActorID:            actorID,
		CancellationReason: r.CancellationReason,
	}
}
