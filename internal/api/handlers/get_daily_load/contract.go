package get_daily_load

import (
	"context"

	"github.com/salonhq/SLN-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetDailyLoad(ctx context.Context, salonID string, date string) (*models.DailyLoadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
