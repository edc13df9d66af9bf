package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case для изменения записи (перенос времени, заметки, депозит)
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи.
// При переносе времени проверка конфликта (без самой записи) и запись
// выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%s by actor=%s", req.ReservationID, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%s not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: repository error for id=%s: %v", req.ReservationID, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		if !reservation.CanBeUpdated() {
			uc.logger.Warn("UpdateReservation: id=%s has status=%s, update rejected",
				req.ReservationID, reservation.Status)
			return ErrInvalidStatus
		}

		// Перенос времени: длительность сохраняется, конфликт проверяется
		// заново без самой записи
		if req.StartTime != nil {
			duration := reservation.Duration()
			newStart := *req.StartTime
			newEnd := newStart.Add(duration)

			if err := domain.ValidateTimeRange(newStart, newEnd, now); err != nil {
				uc.logger.Warn("UpdateReservation: time range validation failed: %v", err)
				return mapDomainValidationErr(err)
			}

			conflict, err := uc.reservationRepo.CheckTimeSlotConflict(
				txCtx, reservation.StaffID, newStart, newEnd, &reservation.ID)
			if err != nil {
				uc.logger.Error("UpdateReservation: conflict check failed for id=%s: %v", req.ReservationID, err)
				return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
			}
			if conflict {
				uc.logger.Warn("UpdateReservation: slot conflict for staff=%s at %s",
					reservation.StaffID, newStart.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}

			reservation.StartTime = newStart
			reservation.EndTime = newEnd
		}

		if req.Notes != nil {
			if len(*req.Notes) > domain.MaxNotesLength {
				return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
			}
			reservation.Notes = req.Notes
		}

		if req.DepositAmount != nil {
			if err := domain.ValidateDepositAmount(req.DepositAmount, reservation.TotalAmount); err != nil {
				uc.logger.Warn("UpdateReservation: deposit validation failed: %v", err)
				return mapDomainValidationErr(err)
			}
			reservation.DepositAmount = req.DepositAmount
		}

		reservation.UpdatedBy = req.ActorID

		if err := uc.reservationRepo.Update(txCtx, reservation); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				return ErrSlotNotAvailable
			}
			uc.logger.Error("UpdateReservation: failed to update id=%s: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated id=%s", result.ID)

	return &Response{
		ID:            result.ID,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Notes:         result.Notes,
		TotalAmount:   result.TotalAmount,
		DepositAmount: result.DepositAmount,
		Status:        string(result.Status),
		UpdatedAt:     result.UpdatedAt,
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
	if req.StartTime == nil && req.Notes == nil && req.DepositAmount == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	return nil
}

// mapDomainValidationErr конвертирует доменные ошибки валидации в ошибки usecase
func mapDomainValidationErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrPastTimeNotAllowed):
		return fmt.Errorf("%w: %v", ErrPastTimeNotAllowed, err)
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	case errors.Is(err, domain.ErrInvalidAmount):
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	default:
		return err
	}
}
