package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidStatus возвращается, когда текущий статус записи
	// не допускает запрошенный переход
	ErrInvalidStatus = errors.New("invalid reservation status for this operation")

	// ErrTooEarlyForNoShow возвращается при попытке отметить неявку
	// до окончания запланированного времени записи
	ErrTooEarlyForNoShow = errors.New("reservation end time has not passed yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
