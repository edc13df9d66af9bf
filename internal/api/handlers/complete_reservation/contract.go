package complete_reservation

import (
	"context"

	"github.com/salonhq/SLN-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Complete(ctx context.Context, id string, req *models.CompleteReservationRequest) (*models.CompleteReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
