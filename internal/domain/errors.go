package domain

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда start >= end или дата выходит
	// за горизонт бронирования
	ErrInvalidTimeRange = errors.New("domain: invalid time range")

	// ErrPastTimeNotAllowed возвращается при попытке создать запись в прошлом
	ErrPastTimeNotAllowed = errors.New("domain: start time is in the past")

	// ErrInvalidAmount возвращается при отрицательной или неправдоподобно
	// большой денежной сумме
	ErrInvalidAmount = errors.New("domain: invalid amount")
)
