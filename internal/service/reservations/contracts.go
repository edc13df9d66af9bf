package reservations

import (
	"context"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	"github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Confirm(ctx context.Context, id, actor string, at time.Time) error
	Complete(ctx context.Context, id, actor string, at time.Time) error
	MarkNoShow(ctx context.Context, id, actor string, at time.Time) error
	Search(ctx context.Context, filter domain.ReservationFilter, page domain.Pagination) ([]*domain.Reservation, error)
	CountByDate(ctx context.Context, salonID string, date time.Time) (int64, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, salonID, serviceID string) (*catalogservice.Service, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
