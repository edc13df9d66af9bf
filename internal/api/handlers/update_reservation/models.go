package update_reservation

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model.
// Отсутствующие поля остаются без изменений.
type UpdateReservationRequest struct {
	StartTime     *time.Time `json:"startTime,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	DepositAmount *int64     `json:"depositAmount,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID, actorID string) *update_reservation.Request {
	return &update_reservation.Request{
		ReservationID: reservationID,
		ActorID:       actorID,
		StartTime:     r.StartTime,
		Notes:         r.Notes,
		DepositAmount: r.DepositAmount,
	}
}

// UpdateReservationResponse HTTP response model
type UpdateReservationResponse struct {
	ID            string    `json:"id"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Notes         *string   `json:"notes,omitempty"`
	TotalAmount   int64     `json:"totalAmount"`
	DepositAmount *int64    `json:"depositAmount,omitempty"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *update_reservation.Response) *UpdateReservationResponse {
	return &UpdateReservationResponse{
		ID:            resp.ID,
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		Notes:         resp.Notes,
		TotalAmount:   resp.TotalAmount,
		DepositAmount: resp.DepositAmount,
		Status:        resp.Status,
		UpdatedAt:     resp.UpdatedAt,
	}
}
