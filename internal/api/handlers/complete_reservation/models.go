package complete_reservation

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/service/reservations/models"
)

// CompleteReservationRequest HTTP request model.
// actualEndTime опционально: при завершении позже запланированного
// в ответе появится доплата за переработку.
type CompleteReservationRequest struct {
	ActualEndTime *time.Time `json:"actualEndTime,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CompleteReservationRequest) ToServiceRequest(actorID string) *models.CompleteReservationRequest {
	return &models.CompleteReservationRequest{
		ActorID:       actorID,
		ActualEndTime: r.ActualEndTime,
	}
}
