package domain

import (
	"math"
	"time"
)

// RefundAmount вычисляет сумму возврата при отмене записи.
//
// Политика возврата по времени до начала записи:
//   - 48 часов и больше: полный возврат
//   - от 24 до 48 часов: 70% (округление вниз до целой денежной единицы)
//   - от 12 до 24 часов: 50% (округление вниз)
//   - меньше 12 часов (включая отмену после начала): без возврата
func RefundAmount(paidAmount int64, hoursBeforeStart float64) int64 {
	switch {
	case hoursBeforeStart >= FullRefundHours:
		return paidAmount
	case hoursBeforeStart >= HighRefundHours:
		return paidAmount * HighRefundPercent / 100
	case hoursBeforeStart >= HalfRefundHours:
		return paidAmount * HalfRefundPercent / 100
	default:
		return 0
	}
}

// HoursUntil возвращает количество часов от now до start.
// Отрицательное значение означает, что start уже прошёл.
func HoursUntil(start, now time.Time) float64 {
	return start.Sub(now).Hours()
}

// OvertimeCharge вычисляет доплату за превышение времени услуги.
// Начатая минута тарифицируется как полная.
func OvertimeCharge(actualEnd, scheduledEnd time.Time, perMinuteRate int64) int64 {
	if !actualEnd.After(scheduledEnd) {
		return 0
	}
	overMinutes := int64(math.Ceil(actualEnd.Sub(scheduledEnd).Minutes()))
	return overMinutes * perMinuteRate
}
