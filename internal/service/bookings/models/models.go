package models

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
)

// Request модели

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	SalonID        string   `json:"salonId"`
	CustomerID     string   `json:"customerId"`
	ActorID        string   `json:"actorId"`
	ReservationIDs []string `json:"reservationIds"`
	DiscountAmount int64    `json:"discountAmount"`
	PaymentMethod  string   `json:"paymentMethod"`
	Notes          *string  `json:"notes,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID            string `json:"actorId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetCustomerBookingsRequest запрос истории бронирований клиента
type GetCustomerBookingsRequest struct {
	SalonID    string `json:"salonId"`
	CustomerID string `json:"customerId"`
	Limit      uint64 `json:"limit,omitempty"`
	Offset     uint64 `json:"offset,omitempty"`
}

// UpdatePaymentStatusRequest запрос на изменение платёжного статуса
type UpdatePaymentStatusRequest struct {
	ActorID       string `json:"actorId"`
	PaymentStatus string `json:"paymentStatus"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             string   `json:"id"`
	SalonID        string   `json:"salonId"`
	CustomerID     string   `json:"customerId"`
	ReservationIDs []string `json:"reservationIds"`

	TotalAmount    int64   `json:"totalAmount"`
	DiscountAmount int64   `json:"discountAmount"`
	FinalAmount    int64   `json:"finalAmount"`
	PaymentMethod  string  `json:"paymentMethod"`
	PaymentStatus  string  `json:"paymentStatus"`
	Notes          *string `json:"notes,omitempty"`

	Status string `json:"status"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	NoShowAt           *time.Time `json:"noShowAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		SalonID:            b.SalonID,
		CustomerID:         b.CustomerID,
		ReservationIDs:     b.ReservationIDs,
		TotalAmount:        b.TotalAmount,
		DiscountAmount:     b.DiscountAmount,
		FinalAmount:        b.FinalAmount,
		PaymentMethod:      b.PaymentMethod,
		PaymentStatus:      string(b.PaymentStatus),
		Notes:              b.Notes,
		Status:             string(b.Status),
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CompletedAt:        b.CompletedAt,
		NoShowAt:           b.NoShowAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings[i] = *dto
		}
	}

	return resp
}
