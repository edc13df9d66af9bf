package update_reservation

import "time"

// Request модель запроса на изменение записи.
// nil-поля остаются без изменений. При переносе StartTime длительность
// записи сохраняется.
type Request struct {
	ReservationID string
	ActorID       string
	StartTime     *time.Time
	Notes         *string
	DepositAmount *int64
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID            string
	StartTime     time.Time
	EndTime       time.Time
	Notes         *string
	TotalAmount   int64
	DepositAmount *int64
	Status        string
	UpdatedAt     time.Time
}
