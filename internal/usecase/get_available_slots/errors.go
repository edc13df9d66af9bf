package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("get_available_slots: staff member not found")

	// ErrDateInPast возвращается при запросе слотов на прошедшую дату,
	// если ретроспективные запросы отключены в конфигурации
	ErrDateInPast = errors.New("get_available_slots: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
