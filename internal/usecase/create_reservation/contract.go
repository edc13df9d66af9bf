package create_reservation

import (
	"context"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	"github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByStaffAndDateRange(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Reservation, error)
}

// CatalogClient интерфейс клиента каталога (услуги, мастера)
type CatalogClient interface {
	GetService(ctx context.Context, salonID, serviceID string) (*catalogservice.Service, error)
	GetStaff(ctx context.Context, salonID, staffID string) (*catalogservice.Staff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
