package create_reservation

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID       string     // ID салона
	CustomerID    string     // ID клиента
	StaffID       string     // ID мастера
	ServiceID     string     // ID услуги (длительность и цена берутся из каталога)
	StartTime     time.Time  // Время начала записи
	DepositAmount *int64     // Депозит (опционально)
	Notes         *string    // Дополнительные заметки (опционально)
	AutoConfirm   bool       // Создать запись сразу в статусе confirmed
	ActorID       string     // ID инициатора операции (для аудита)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         string
	SalonID    string
	CustomerID string
	StaffID    string
	ServiceID  string

	StartTime time.Time
	EndTime   time.Time

	ServiceName   string
	TotalAmount   int64
	DepositAmount *int64
	Paid          bool
	Notes         *string
	Status        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует доменную запись в response
func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:            res.ID,
		SalonID:       res.SalonID,
		CustomerID:    res.CustomerID,
		StaffID:       res.StaffID,
		ServiceID:     res.ServiceID,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		ServiceName:   res.ServiceName,
		TotalAmount:   res.TotalAmount,
		DepositAmount: res.DepositAmount,
		Paid:          res.Paid,
		Notes:         res.Notes,
		Status:        string(res.Status),
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
}
