package cancel_reservation

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CancelReservationRequest) ToUseCaseRequest(reservationID, actorID string) *cancel_reservation.Request {
	return &cancel_reservation.Request{
		ReservationID: reservationID,
		ActorID:       actorID,
		Reason:        r.Reason,
	}
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ReservationID string    `json:"reservationId"`
	Status        string    `json:"status"`
	RefundAmount  int64     `json:"refundAmount"`
	CancelledAt   time.Time `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *cancel_reservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		RefundAmount:  resp.RefundAmount,
		CancelledAt:   resp.CancelledAt,
	}
}
