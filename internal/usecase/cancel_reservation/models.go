package cancel_reservation

import "time"

// Request модель запроса на отмену записи
type Request struct {
	ReservationID string // ID записи
	ActorID       string // ID инициатора отмены (для аудита)
	Reason        string // Причина отмены (обязательна)
}

// Response модель ответа с результатом отмены
type Response struct {
	ReservationID string
	Status        string
	RefundAmount  int64 // Сумма возврата по политике отмены
	CancelledAt   time.Time
}
