package domain

// Business rule constants
const (
	// MinCancelNoticeMinutes минимальное время до начала записи, при котором
	// ещё разрешена отмена
	MinCancelNoticeMinutes = 60

	// MaxAdvanceMonths максимальный горизонт бронирования (3 месяца вперёд)
	MaxAdvanceMonths = 3

	// MaxAmount верхняя граница любой денежной суммы (sanity ceiling)
	MaxAmount = 10_000_000

	// MaxNotesLength максимальная длина заметок
	MaxNotesLength = 500

	// MaxCancellationReasonLength максимальная длина причины отмены
	MaxCancellationReasonLength = 500
)

// Refund policy tiers (hours before the scheduled start)
const (
	FullRefundHours = 48
	HighRefundHours = 24
	HalfRefundHours = 12

	HighRefundPercent = 70
	HalfRefundPercent = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов бронирования.
// Из этих статусов переходы невозможны, записи хранятся для истории.
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// SlotOccupyingStatuses статусы, при которых запись продолжает занимать слот.
// Используется при проверке конфликтов расписания.
var SlotOccupyingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
