package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrInvalidStatus возвращается при попытке изменить запись
	// в терминальном статусе
	ErrInvalidStatus = errors.New("update_reservation: reservation cannot be updated in its current status")

	// ErrSlotNotAvailable возвращается, когда новое время пересекается с
	// другой записью мастера
	ErrSlotNotAvailable = errors.New("update_reservation: slot is not available")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("update_reservation: invalid time range")

	// ErrPastTimeNotAllowed возвращается при переносе записи в прошлое
	ErrPastTimeNotAllowed = errors.New("update_reservation: start time is in the past")

	// ErrInvalidAmount возвращается при некорректном депозите
	ErrInvalidAmount = errors.New("update_reservation: invalid amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
