package cancel_reservation

import (
	"context"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id, actor, reason string, at time.Time) error
}

// EventPublisher интерфейс публикации событий (best-effort)
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
