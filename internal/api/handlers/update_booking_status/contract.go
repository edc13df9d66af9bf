package update_booking_status

import (
	"context"

	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id, actorID string) (*models.BookingResponse, error)
	Complete(ctx context.Context, id, actorID string) (*models.BookingResponse, error)
	MarkNoShow(ctx context.Context, id, actorID string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
