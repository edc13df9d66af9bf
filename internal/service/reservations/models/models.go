package models

import (
	"errors"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ListReservationsRequest запрос на поиск записей с гибкой фильтрацией
type ListReservationsRequest struct {
	SalonID         *string    `json:"salonId,omitempty"`
	CustomerID      *string    `json:"customerId,omitempty"`
	StaffID         *string    `json:"staffId,omitempty"`
	Status          *string    `json:"status,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	IncludeTerminal bool       `json:"includeTerminal,omitempty"`
	Limit           uint64     `json:"limit,omitempty"`
	Offset          uint64     `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		SalonID:         r.SalonID,
		CustomerID:      r.CustomerID,
		StaffID:         r.StaffID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeTerminal: r.IncludeTerminal,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CompleteReservationRequest запрос на завершение записи.
// ActualEndTime опционально: при фактическом завершении позже
// запланированного начисляется доплата за переработку.
type CompleteReservationRequest struct {
	ActorID       string     `json:"actorId"`
	ActualEndTime *time.Time `json:"actualEndTime,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными записи
type ReservationResponse struct {
	ID         string `json:"id"`
	SalonID    string `json:"salonId"`
	CustomerID string `json:"customerId"`
	StaffID    string `json:"staffId"`
	ServiceID  string `json:"serviceId"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	ServiceName string `json:"serviceName"`

	TotalAmount   int64  `json:"totalAmount"`
	DepositAmount *int64 `json:"depositAmount,omitempty"`
	Paid          bool   `json:"paid"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	NoShowAt           *time.Time `json:"noShowAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// CompleteReservationResponse ответ на завершение записи
type CompleteReservationResponse struct {
	ReservationID  string    `json:"reservationId"`
	Status         string    `json:"status"`
	OvertimeAmount int64     `json:"overtimeAmount"`
	FinalAmount    int64     `json:"finalAmount"` // totalAmount + overtimeAmount
	CompletedAt    time.Time `json:"completedAt"`
}

// DailyLoadResponse ответ с загрузкой салона на дату
type DailyLoadResponse struct {
	SalonID          string `json:"salonId"`
	Date             string `json:"date"` // "2026-09-15"
	ReservationCount int64  `json:"reservationCount"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:                 r.ID,
		SalonID:            r.SalonID,
		CustomerID:         r.CustomerID,
		StaffID:            r.StaffID,
		ServiceID:          r.ServiceID,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		ServiceName:        r.ServiceName,
		TotalAmount:        r.TotalAmount,
		DepositAmount:      r.DepositAmount,
		Paid:               r.Paid,
		Status:             string(r.Status),
		Notes:              r.Notes,
		ConfirmedAt:        r.ConfirmedAt,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CompletedAt:        r.CompletedAt,
		NoShowAt:           r.NoShowAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, r := range reservations {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations[i] = *dto
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
