package domain

import (
	"fmt"
	"time"
)

// ValidateTimeRange проверяет временной диапазон записи:
// start строго раньше end, start не в прошлом и не дальше горизонта
// бронирования (MaxAdvanceMonths) от now
func ValidateTimeRange(start, end, now time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidTimeRange)
	}

	if start.Before(now) {
		return ErrPastTimeNotAllowed
	}

	horizon := now.AddDate(0, MaxAdvanceMonths, 0)
	if start.After(horizon) {
		return fmt.Errorf("%w: start exceeds %d month booking horizon", ErrInvalidTimeRange, MaxAdvanceMonths)
	}

	return nil
}

// ValidateAmount проверяет денежную сумму: не отрицательная и не выше MaxAmount
func ValidateAmount(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: amount exceeds ceiling of %d", ErrInvalidAmount, int64(MaxAmount))
	}
	return nil
}

// ValidateDepositAmount проверяет депозит: 0 <= deposit <= total.
// nil допустим - депозит опционален.
func ValidateDepositAmount(deposit *int64, total int64) error {
	if deposit == nil {
		return nil
	}
	if *deposit < 0 {
		return fmt.Errorf("%w: deposit must not be negative", ErrInvalidAmount)
	}
	if *deposit > total {
		return fmt.Errorf("%w: deposit exceeds total amount", ErrInvalidAmount)
	}
	return nil
}
