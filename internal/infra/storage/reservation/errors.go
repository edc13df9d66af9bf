package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotConflict возвращается, когда интервал записи пересекается с
	// существующей записью мастера (exclusion constraint в БД)
	ErrSlotConflict = errors.New("reservation.repository: time slot conflict")

	// ErrStatusConflict возвращается, когда статусный переход не применился -
	// запись уже изменила статус конкурентной операцией
	ErrStatusConflict = errors.New("reservation.repository: status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
