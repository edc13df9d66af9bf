package cancel_reservation

import (
	"context"

	"github.com/salonhq/SLN-ReservationService/internal/usecase/cancel_reservation"
)

type CancelReservationUseCase interface {
	Execute(ctx context.Context, req *cancel_reservation.Request) (*cancel_reservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
