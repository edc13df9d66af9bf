package create_booking

import (
	"context"

	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

type BookingService interface {
	Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
