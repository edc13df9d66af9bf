package create_reservation

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_reservation: staff member not found")

	// ErrStaffNotWorking возвращается, когда мастер не работает в указанный день
	ErrStaffNotWorking = errors.New("create_reservation: staff member does not work on this day")

	// ErrOutsideWorkingHours возвращается, когда интервал записи выходит за
	// рабочие часы мастера
	ErrOutsideWorkingHours = errors.New("create_reservation: slot is outside working hours")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	// или превышении горизонта бронирования
	ErrInvalidTimeRange = errors.New("create_reservation: invalid time range")

	// ErrPastTimeNotAllowed возвращается при попытке записи в прошлое
	ErrPastTimeNotAllowed = errors.New("create_reservation: start time is in the past")

	// ErrInvalidAmount возвращается при некорректной сумме или депозите
	ErrInvalidAmount = errors.New("create_reservation: invalid amount")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с существующей
	// записью мастера
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
