package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	catalogClient "github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
	"github.com/salonhq/SLN-ReservationService/internal/service/reservations/models"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Service сервис для работы с записями салона
type Service struct {
	reservationRepo ReservationRepository
	catalogClient   CatalogServiceClient
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	catalogClient CatalogServiceClient,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		catalogClient:   catalogClient,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// List получает записи с гибкой фильтрацией
//
// Примеры использования:
// - Активные записи салона: List(ctx, &ListReservationsRequest{SalonID: &salonID})
// - История клиента: указать CustomerID и IncludeTerminal = true
// - Расписание мастера на дату: StaffID + StartDate/EndDate на одну дату
// - Только подтверждённые: указать Status = "confirmed"
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations, salon=%v, customer=%v, staff=%v",
		req.SalonID, req.CustomerID, req.StaffID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	page := domain.Pagination{Limit: req.Limit, Offset: req.Offset}
	if page.Limit == 0 {
		page.Limit = defaultPageLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}

	reservations, err := s.reservationRepo.Search(ctx, filter, page)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Confirm подтверждает ожидающую запись (pending -> confirmed)
func (s *Service) Confirm(ctx context.Context, id, actorID string) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%s by actor=%s", id, actorID)

	if actorID == "" {
		return nil, fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	if err := s.reservationRepo.Confirm(ctx, id, actorID, now); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("Confirm: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusConflict):
			s.logger.Warn("Confirm: reservation id=%s is not pending", id)
			return nil, ErrInvalidStatus
		default:
			s.logger.Error("Confirm: repository error for reservation id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Confirm: failed to reload reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.publishEvent(ctx, events.TypeReservationConfirmed, reservation, actorID)

	s.logger.Info("Confirm: successfully confirmed reservation id=%s", id)
	return models.FromDomainReservation(reservation), nil
}

// Complete завершает подтверждённую запись (confirmed -> completed).
// При фактическом завершении позже запланированного начисляется доплата
// за переработку по поминутной ставке услуги.
func (s *Service) Complete(ctx context.Context, id string, req *models.CompleteReservationRequest) (*models.CompleteReservationResponse, error) {
	s.logger.Info("Complete: completing reservation id=%s by actor=%s", id, req.ActorID)

	if req.ActorID == "" {
		return nil, fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Complete: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Complete: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if !domain.CanTransition(reservation.Status, domain.StatusCompleted) {
		s.logger.Warn("Complete: reservation id=%s has status=%s, completion rejected", id, reservation.Status)
		return nil, ErrInvalidStatus
	}

	// Доплата за переработку считается до записи перехода: при ошибке
	// каталога запись остаётся confirmed и операцию можно повторить
	var overtime int64
	if req.ActualEndTime != nil && req.ActualEndTime.After(reservation.EndTime) {
		service, err := s.catalogClient.GetService(ctx, reservation.SalonID, reservation.ServiceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				s.logger.Warn("Complete: service id=%s not found for reservation id=%s", reservation.ServiceID, id)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Complete: failed to get service id=%s: %v", reservation.ServiceID, err)
			return nil, fmt.Errorf("%w: Complete - failed to get service: %v", ErrInternal, err)
		}

		overtime = domain.OvertimeCharge(*req.ActualEndTime, reservation.EndTime, service.OvertimeRatePerMinute)
	}

	now := s.timeProvider.Now()

	if err := s.reservationRepo.Complete(ctx, id, req.ActorID, now); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusConflict):
			// Конкурентная операция успела изменить статус
			s.logger.Warn("Complete: reservation id=%s status changed concurrently", id)
			return nil, ErrInvalidStatus
		default:
			s.logger.Error("Complete: repository error for reservation id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}
	}

	s.publishEvent(ctx, events.TypeReservationCompleted, reservation, req.ActorID)

	s.logger.Info("Complete: successfully completed reservation id=%s, overtime=%d", id, overtime)

	return &models.CompleteReservationResponse{
		ReservationID:  id,
		Status:         string(domain.StatusCompleted),
		OvertimeAmount: overtime,
		FinalAmount:    reservation.TotalAmount + overtime,
		CompletedAt:    now,
	}, nil
}

// MarkNoShow отмечает неявку клиента. Допустимо только после окончания
// запланированного времени записи.
func (s *Service) MarkNoShow(ctx context.Context, id, actorID string) (*models.ReservationResponse, error) {
	s.logger.Info("MarkNoShow: marking reservation id=%s as no-show by actor=%s", id, actorID)

	if actorID == "" {
		return nil, fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("MarkNoShow: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("MarkNoShow: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	if !domain.CanTransition(reservation.Status, domain.StatusNoShow) {
		s.logger.Warn("MarkNoShow: reservation id=%s has status=%s, no-show rejected", id, reservation.Status)
		return nil, ErrInvalidStatus
	}
	if now.Before(reservation.EndTime) {
		s.logger.Warn("MarkNoShow: reservation id=%s has not ended yet (end=%s)", id, reservation.EndTime)
		return nil, ErrTooEarlyForNoShow
	}

	if err := s.reservationRepo.MarkNoShow(ctx, id, actorID, now); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusConflict):
			s.logger.Warn("MarkNoShow: reservation id=%s status changed concurrently", id)
			return nil, ErrInvalidStatus
		default:
			s.logger.Error("MarkNoShow: repository error for reservation id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
		}
	}

	s.publishEvent(ctx, events.TypeReservationNoShow, reservation, actorID)

	updated, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("MarkNoShow: failed to reload reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: successfully marked reservation id=%s as no-show", id)
	return models.FromDomainReservation(updated), nil
}

// GetDailyLoad возвращает число записей салона на дату (без отменённых)
func (s *Service) GetDailyLoad(ctx context.Context, salonID string, date string) (*models.DailyLoadResponse, error) {
	s.logger.Info("GetDailyLoad: salon=%s, date=%s", salonID, date)

	if salonID == "" {
		return nil, fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}

	day, err := parseDate(date)
	if err != nil {
		s.logger.Warn("GetDailyLoad: invalid date=%s", date)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	count, err := s.reservationRepo.CountByDate(ctx, salonID, day)
	if err != nil {
		s.logger.Error("GetDailyLoad: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetDailyLoad - repository error: %v", ErrInternal, err)
	}

	return &models.DailyLoadResponse{
		SalonID:          salonID,
		Date:             day.Format(domain.DateFormat),
		ReservationCount: count,
	}, nil
}

// parseDate парсит дату в формате YYYY-MM-DD
func parseDate(date string) (time.Time, error) {
	return time.Parse(domain.DateFormat, date)
}

// publishEvent публикует доменное событие (best-effort)
func (s *Service) publishEvent(ctx context.Context, eventType string, r *domain.Reservation, actorID string) {
	if pubErr := s.publisher.Publish(ctx, events.Event{
		Type:          eventType,
		OccurredAt:    s.timeProvider.Now(),
		ReservationID: r.ID,
		SalonID:       r.SalonID,
		CustomerID:    r.CustomerID,
		ActorID:       actorID,
	}); pubErr != nil {
		s.logger.Error("publishEvent: failed to publish %s for reservation id=%s: %v", eventType, r.ID, pubErr)
	}
}
