package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrReservationNotFound возвращается, когда запись из бронирования
	// не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInconsistentAmounts возвращается при нарушении денежного инварианта
	// finalAmount = totalAmount - discountAmount
	ErrInconsistentAmounts = errors.New("booking amounts are inconsistent")

	// ErrReservationMismatch возвращается, когда запись принадлежит другому
	// клиенту или салону
	ErrReservationMismatch = errors.New("reservation belongs to a different customer or salon")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidStatus возвращается, когда текущий статус бронирования
	// не допускает запрошенный переход
	ErrInvalidStatus = errors.New("invalid booking status for this operation")

	// ErrInvalidPaymentStatus возвращается при неизвестном платёжном статусе
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
