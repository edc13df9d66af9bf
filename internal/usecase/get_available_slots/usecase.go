package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	catalogClient "github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов мастера на день
type UseCase struct {
	reservationRepo ReservationRepository
	catalogClient   CatalogClient
	timeProvider    TimeProvider
	logger          Logger

	// allowPastDates разрешает ретроспективные запросы слотов
	// (например, для отчётности)
	allowPastDates bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogClient CatalogClient,
	allowPastDates bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		allowPastDates:  allowPastDates,
	}
}

// Execute выполняет use case получения доступных слотов.
// Результат вычисляется заново на каждый запрос и не кэшируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%s, staff=%s, service=%s, date=%s",
		req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка даты (прошлые даты - по конфигурации)
	now := uc.timeProvider.Now()
	if !uc.allowPastDates && isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: past date %s rejected", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 3. Получаем услугу (длительность слота)
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем мастера с рабочим расписанием
	staff, err := uc.catalogClient.GetStaff(ctx, req.SalonID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 5. Генерируем кандидатные слоты по рабочим часам дня
	candidates, err := generateSlotStarts(req.StaffID, staff.ScheduleForDay(req.Date), req.Date, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 6. Получаем записи мастера, пересекающие этот день
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := uc.reservationRepo.GetByStaffAndDateRange(ctx, req.StaffID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff reservations: %v", ErrInternal, err)
	}

	// 7. Отбрасываем занятые слоты
	slots := filterAvailable(candidates, existing)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for staff=%s on %s",
		len(slots), len(candidates), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID == "" {
		return fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}
	if req.StaffID == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
