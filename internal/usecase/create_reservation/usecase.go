package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	catalogClient "github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
)

// UseCase use case для создания записи
type UseCase struct {
	reservationRepo ReservationRepository
	catalogClient   CatalogClient
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции,
// записи мастера на день читаются с блокировкой FOR UPDATE - две конкурентные
// попытки занять пересекающийся слот не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: salon=%s, customer=%s, staff=%s, service=%s, start=%s",
		req.SalonID, req.CustomerID, req.StaffID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу (длительность, цена, тариф переработки)
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем мастера с рабочим расписанием
	staff, err := uc.catalogClient.GetStaff(ctx, req.SalonID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateReservation: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateReservation: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 5. Вычисляем конец записи по длительности услуги
	endTime := req.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 6. Валидация временного диапазона (start < end, не в прошлом, горизонт 3 месяца)
	if err := domain.ValidateTimeRange(req.StartTime, endTime, now); err != nil {
		uc.logger.Warn("CreateReservation: time range validation failed: %v", err)
		return nil, mapDomainValidationErr(err)
	}

	// 7. Проверяем рабочие часы мастера
	if err := validateWithinWorkingHours(staff.ScheduleForDay(req.StartTime), req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateReservation: working hours check failed for staff=%s: %v", req.StaffID, err)
		return nil, err
	}

	// 8. Валидация денежных сумм
	if err := domain.ValidateAmount(service.PriceAmount); err != nil {
		uc.logger.Warn("CreateReservation: amount validation failed: %v", err)
		return nil, mapDomainValidationErr(err)
	}
	if err := domain.ValidateDepositAmount(req.DepositAmount, service.PriceAmount); err != nil {
		uc.logger.Warn("CreateReservation: deposit validation failed: %v", err)
		return nil, mapDomainValidationErr(err)
	}

	var result *domain.Reservation

	// 9. Проверка конфликта и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayStart := time.Date(req.StartTime.Year(), req.StartTime.Month(), req.StartTime.Day(),
			0, 0, 0, 0, req.StartTime.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		// 9.1. Читаем записи мастера на день с блокировкой FOR UPDATE
		existing, err := uc.reservationRepo.GetByStaffAndDateRange(txCtx, req.StaffID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get staff reservations: %v", err)
			return fmt.Errorf("%w: failed to get staff reservations: %v", ErrInternal, err)
		}

		// 9.2. Проверяем пересечение интервалов (полуоткрытые, границы не конфликтуют)
		if hasConflict(req.StartTime, endTime, existing) {
			uc.logger.Warn("CreateReservation: slot conflict for staff=%s at %s",
				req.StaffID, req.StartTime.Format(time.RFC3339))
			return ErrSlotNotAvailable
		}

		// 9.3. Собираем запись
		reservation := &domain.Reservation{
			ID:            uuid.NewString(),
			SalonID:       req.SalonID,
			CustomerID:    req.CustomerID,
			StaffID:       req.StaffID,
			ServiceID:     req.ServiceID,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			ServiceName:   service.Name,
			TotalAmount:   service.PriceAmount,
			DepositAmount: req.DepositAmount,
			Notes:         req.Notes,
			Status:        domain.StatusPending,
			CreatedBy:     req.ActorID,
			UpdatedBy:     req.ActorID,
		}

		// Немедленное подтверждение, если запрошено
		if req.AutoConfirm {
			reservation.Status = domain.StatusConfirmed
			reservation.ConfirmedAt = &now
			reservation.ConfirmedBy = &req.ActorID
		}

		// 9.4. Сохраняем запись. Exclusion constraint - страховка на случай,
		// когда обе конкурентные транзакции прошли проверку пересечения
		// (FOR UPDATE не блокирует ещё не существующие строки)
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateReservation: insert lost the race for staff=%s at %s",
					req.StaffID, req.StartTime.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s status=%s",
		result.ID, result.Status)

	// 10. Публикуем событие (best-effort, сбой не проваливает операцию)
	if pubErr := uc.publisher.Publish(ctx, events.Event{
		Type:          events.TypeReservationCreated,
		OccurredAt:    now,
		ReservationID: result.ID,
		SalonID:       result.SalonID,
		CustomerID:    result.CustomerID,
		ActorID:       req.ActorID,
	}); pubErr != nil {
		uc.logger.Error("CreateReservation: failed to publish event for id=%s: %v", result.ID, pubErr)
	}

	return fromDomain(result), nil
}
