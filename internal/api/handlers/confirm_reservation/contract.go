package confirm_reservation

import (
	"context"

	"github.com/salonhq/SLN-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Confirm(ctx context.Context, id, actorID string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
