package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundAmount(t *testing.T) {
	tests := []struct {
		name             string
		paidAmount       int64
		hoursBeforeStart float64
		want             int64
	}{
		{"full refund at exactly 48h", 10000, 48, 10000},
		{"full refund far in advance", 5000, 200, 5000},
		{"70 percent between 24h and 48h", 10000, 30, 7000},
		{"70 percent floors to whole unit", 101, 24, 70},
		{"50 percent between 12h and 24h", 10000, 12, 5000},
		{"50 percent floors to whole unit", 101, 13, 50},
		{"zero refund under 12h", 10000, 11.9, 0},
		{"zero refund at 30 minutes", 10000, 0.5, 0},
		{"zero refund after start", 10000, -3, 0},
		{"zero paid amount", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundAmount(tt.paidAmount, tt.hoursBeforeStart))
		})
	}
}

// Возврат не может уменьшаться при увеличении времени до начала записи
func TestRefundAmount_Monotonicity(t *testing.T) {
	const amount = 33333

	prev := int64(-1)
	for h := -24.0; h <= 96; h += 0.25 {
		got := RefundAmount(amount, h)
		assert.GreaterOrEqual(t, got, prev, "refund must not decrease at %v hours", h)
		assert.LessOrEqual(t, got, int64(amount))
		prev = got
	}
}

func TestOvertimeCharge(t *testing.T) {
	scheduledEnd := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		actualEnd     time.Time
		perMinuteRate int64
		want          int64
	}{
		{"finished on time", scheduledEnd, 50, 0},
		{"finished early", scheduledEnd.Add(-10 * time.Minute), 50, 0},
		{"15 minutes over", scheduledEnd.Add(15 * time.Minute), 50, 750},
		{"partial minute rounds up", scheduledEnd.Add(90 * time.Second), 50, 100},
		{"one second over counts as a minute", scheduledEnd.Add(time.Second), 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OvertimeCharge(tt.actualEnd, scheduledEnd, tt.perMinuteRate))
		})
	}
}

func TestHoursUntil(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.InDelta(t, 30.0, HoursUntil(now.Add(30*time.Hour), now), 1e-9)
	assert.InDelta(t, -2.0, HoursUntil(now.Add(-2*time.Hour), now), 1e-9)
}
