package cancel_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	"github.com/salonhq/SLN-ReservationService/pkg/ptr"
)

// UseCase use case для отмены записи с расчётом возврата
type UseCase struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены записи.
// Повторная отмена детерминированно завершается ErrCannotCancel -
// возврат никогда не начисляется дважды.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: id=%s by actor=%s", req.ReservationID, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: repository error for id=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 3. Проверяем guard отмены: статус и минимальное время до начала
	now := uc.timeProvider.Now()
	if !reservation.CanCancelAt(now) {
		uc.logger.Warn("CancelReservation: id=%s cannot be cancelled, status=%s, start=%s",
			req.ReservationID, reservation.Status, reservation.StartTime)
		return nil, ErrCannotCancel
	}

	// 4. Вычисляем сумму возврата по политике отмены.
	// Базой служит фактически оплаченная сумма: полная стоимость для
	// оплаченных записей, иначе депозит (если вносился).
	paidAmount := int64(0)
	switch {
	case reservation.Paid:
		paidAmount = reservation.TotalAmount
	case reservation.DepositAmount != nil:
		paidAmount = *reservation.DepositAmount
	}

	refund := domain.RefundAmount(paidAmount, domain.HoursUntil(reservation.StartTime, now))

	// 5. Отменяем запись (единственная запись в хранилище, атомарная)
	if err := uc.reservationRepo.Cancel(ctx, req.ReservationID, req.ActorID, req.Reason, now); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusConflict):
			// Конкурентная операция успела изменить статус
			uc.logger.Warn("CancelReservation: id=%s status changed concurrently", req.ReservationID)
			return nil, ErrCannotCancel
		default:
			uc.logger.Error("CancelReservation: repository error for id=%s: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CancelReservation: successfully cancelled id=%s, refund=%d", req.ReservationID, refund)

	// 6. Публикуем событие (best-effort)
	if pubErr := uc.publisher.Publish(ctx, events.Event{
		Type:          events.TypeReservationCancelled,
		OccurredAt:    now,
		ReservationID: reservation.ID,
		SalonID:       reservation.SalonID,
		CustomerID:    reservation.CustomerID,
		ActorID:       req.ActorID,
		RefundAmount:  ptr.Ptr(refund),
	}); pubErr != nil {
		uc.logger.Error("CancelReservation: failed to publish event for id=%s: %v", reservation.ID, pubErr)
	}

	return &Response{
		ReservationID: reservation.ID,
		Status:        string(domain.StatusCancelled),
		RefundAmount:  refund,
		CancelledAt:   now,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID == "" {
		return fmt.Errorf("%w: reservationID is required", ErrInvalidInput)
	}
	if req.ActorID == "" {
		return fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
