package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("catalogservice: staff member not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalogservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice: internal error")
)
