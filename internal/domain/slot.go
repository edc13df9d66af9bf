package domain

import "time"

// AvailableSlot represents a candidate time interval open for a reservation.
// It is a query result, recomputed on every request, never persisted.
type AvailableSlot struct {
	StaffID   string
	StartTime time.Time
	EndTime   time.Time
}

// DurationMinutes returns the slot length in whole minutes
func (s *AvailableSlot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
