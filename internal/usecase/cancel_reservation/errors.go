package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrCannotCancel возвращается, когда запись уже в терминальном статусе
	// или до начала осталось меньше минимального времени отмены
	ErrCannotCancel = errors.New("cancel_reservation: reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	// (в частности, при пустой причине отмены)
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
