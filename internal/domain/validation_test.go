package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonhq/SLN-ReservationService/pkg/ptr"
)

func TestValidateTimeRange(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid range tomorrow", now.Add(24 * time.Hour), now.Add(25 * time.Hour), nil},
		{"start equals end", now.Add(24 * time.Hour), now.Add(24 * time.Hour), ErrInvalidTimeRange},
		{"start after end", now.Add(25 * time.Hour), now.Add(24 * time.Hour), ErrInvalidTimeRange},
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour), ErrPastTimeNotAllowed},
		{"start beyond 3 month horizon", now.AddDate(0, 3, 1), now.AddDate(0, 3, 1).Add(time.Hour), ErrInvalidTimeRange},
		{"start exactly at horizon", now.AddDate(0, 3, 0), now.AddDate(0, 3, 0).Add(time.Hour), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeRange(tt.start, tt.end, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(0))
	assert.NoError(t, ValidateAmount(5000))
	assert.NoError(t, ValidateAmount(MaxAmount))
	assert.ErrorIs(t, ValidateAmount(-1), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(MaxAmount+1), ErrInvalidAmount)
}

func TestValidateDepositAmount(t *testing.T) {
	assert.NoError(t, ValidateDepositAmount(nil, 5000))
	assert.NoError(t, ValidateDepositAmount(ptr.Ptr(int64(0)), 5000))
	assert.NoError(t, ValidateDepositAmount(ptr.Ptr(int64(5000)), 5000))
	assert.ErrorIs(t, ValidateDepositAmount(ptr.Ptr(int64(-1)), 5000), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateDepositAmount(ptr.Ptr(int64(5001)), 5000), ErrInvalidAmount)
}
