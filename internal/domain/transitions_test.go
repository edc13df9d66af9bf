package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

// Терминальные статусы не допускают никаких переходов
func TestCanTransition_TerminalStatesAreFinal(t *testing.T) {
	all := []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

	for _, terminal := range TerminalStatuses {
		for _, to := range all {
			assert.False(t, CanTransition(terminal, to),
				"transition %s -> %s must be rejected", terminal, to)
		}
	}
}

func TestCanCancelAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	res := &Reservation{
		Status:    StatusConfirmed,
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(3 * time.Hour),
	}
	assert.True(t, res.CanCancelAt(now))

	// меньше часа до начала - отмена запрещена
	res.StartTime = now.Add(30 * time.Minute)
	assert.False(t, res.CanCancelAt(now))

	// ровно час до начала - тоже поздно
	res.StartTime = now.Add(time.Hour)
	assert.False(t, res.CanCancelAt(now))

	// терминальный статус
	res.StartTime = now.Add(48 * time.Hour)
	res.Status = StatusCancelled
	assert.False(t, res.CanCancelAt(now))
}

func TestCanMarkNoShowAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	res := &Reservation{
		Status:    StatusConfirmed,
		StartTime: now.Add(-2 * time.Hour),
		EndTime:   now.Add(-time.Hour),
	}
	assert.True(t, res.CanMarkNoShowAt(now))

	// запись ещё не закончилась
	res.EndTime = now.Add(time.Hour)
	assert.False(t, res.CanMarkNoShowAt(now))

	// завершённую запись отметить неявкой нельзя
	res.EndTime = now.Add(-time.Hour)
	res.Status = StatusCompleted
	assert.False(t, res.CanMarkNoShowAt(now))
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	// пересечение в середине
	assert.True(t, Overlaps(at(0), at(60), at(30), at(90)))
	// полное вложение
	assert.True(t, Overlaps(at(0), at(60), at(10), at(20)))
	// граничащие интервалы не конфликтуют (полуоткрытые интервалы)
	assert.False(t, Overlaps(at(0), at(60), at(60), at(120)))
	assert.False(t, Overlaps(at(60), at(120), at(0), at(60)))
	// непересекающиеся
	assert.False(t, Overlaps(at(0), at(30), at(60), at(90)))
}
