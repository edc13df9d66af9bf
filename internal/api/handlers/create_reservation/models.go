package create_reservation

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SalonID       string    `json:"salonId"`
	CustomerID    string    `json:"customerId"`
	StaffID       string    `json:"staffId"`
	ServiceID     string    `json:"serviceId"`
	StartTime     time.Time `json:"startTime"`
	DepositAmount *int64    `json:"depositAmount,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	AutoConfirm   bool      `json:"autoConfirm,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateReservationRequest) ToUseCaseRequest(actorID string) *create_reservation.Request {
	return &create_reservation.Request{
		SalonID:       r.SalonID,
		CustomerID:    r.CustomerID,
		StaffID:       r.StaffID,
		ServiceID:     r.ServiceID,
		StartTime:     r.StartTime,
		DepositAmount: r.DepositAmount,
		Notes:         r.Notes,
		AutoConfirm:   r.AutoConfirm,
		ActorID:       actorID,
	}
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	ID         string `json:"id"`
	SalonID    string `json:"salonId"`
	CustomerID string `json:"customerId"`
	StaffID    string `json:"staffId"`
	ServiceID  string `json:"serviceId"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	ServiceName   string  `json:"serviceName"`
	TotalAmount   int64   `json:"totalAmount"`
	DepositAmount *int64  `json:"depositAmount,omitempty"`
	Paid          bool    `json:"paid"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *create_reservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:            resp.ID,
		SalonID:       resp.SalonID,
		CustomerID:    resp.CustomerID,
		StaffID:       resp.StaffID,
		ServiceID:     resp.ServiceID,
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		ServiceName:   resp.ServiceName,
		TotalAmount:   resp.TotalAmount,
		DepositAmount: resp.DepositAmount,
		Paid:          resp.Paid,
		Notes:         resp.Notes,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}
