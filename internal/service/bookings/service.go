package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	bookingRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/booking"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Service сервис для работы с бронированиями - агрегатами записей
type Service struct {
	bookingRepo     BookingRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Create создает бронирование из одной или нескольких записей клиента.
// Все записи должны существовать и принадлежать тому же клиенту и салону.
// Сумма бронирования складывается из сумм записей, скидка вычитается.
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Create: creating booking for customer=%s in salon=%s, reservations=%d",
		req.CustomerID, req.SalonID, len(req.ReservationIDs))

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var totalAmount int64

		for _, resID := range req.ReservationIDs {
			reservation, err := s.reservationRepo.GetByID(txCtx, resID)
			if err != nil {
				if errors.Is(err, reservationRepo.ErrReservationNotFound) {
					s.logger.Warn("Create: reservation id=%s not found", resID)
					return fmt.Errorf("%w: id=%s", ErrReservationNotFound, resID)
				}
				s.logger.Error("Create: repository error for reservation id=%s: %v", resID, err)
				return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
			}

			if reservation.SalonID != req.SalonID || reservation.CustomerID != req.CustomerID {
				s.logger.Warn("Create: reservation id=%s belongs to another customer/salon", resID)
				return fmt.Errorf("%w: id=%s", ErrReservationMismatch, resID)
			}

			totalAmount += reservation.TotalAmount
		}

		finalAmount := totalAmount - req.DiscountAmount

		now := s.timeProvider.Now()
		booking := &domain.Booking{
			ID:             uuid.NewString(),
			SalonID:        req.SalonID,
			CustomerID:     req.CustomerID,
			ReservationIDs: req.ReservationIDs,
			TotalAmount:    totalAmount,
			DiscountAmount: req.DiscountAmount,
			FinalAmount:    finalAmount,
			PaymentMethod:  req.PaymentMethod,
			PaymentStatus:  domain.PaymentStatusPending,
			Notes:          req.Notes,
			Status:         domain.BookingStatusDraft,
			CreatedAt:      now,
			CreatedBy:      req.ActorID,
			UpdatedAt:      now,
			UpdatedBy:      req.ActorID,
		}

		if !booking.AmountsConsistent() {
			s.logger.Warn("Create: inconsistent amounts total=%d, discount=%d, final=%d",
				totalAmount, req.DiscountAmount, finalAmount)
			return ErrInconsistentAmounts
		}

		result, err := s.bookingRepo.Create(txCtx, booking)
		if err != nil {
			s.logger.Error("Create: failed to create booking: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		created = result
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created booking id=%s, final=%d", created.ID, created.FinalAmount)

	s.publishEvent(ctx, events.TypeBookingCreated, created, req.ActorID, nil)

	return models.FromDomainBooking(created), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента в салоне
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s in salon=%s", req.CustomerID, req.SalonID)

	if req.SalonID == "" || req.CustomerID == "" {
		return nil, fmt.Errorf("%w: salonID and customerID are required", ErrInvalidInput)
	}

	page := domain.Pagination{Limit: req.Limit, Offset: req.Offset}
	if page.Limit == 0 {
		page.Limit = defaultPageLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.SalonID, req.CustomerID, page)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%s", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает черновик бронирования (draft -> confirmed)
func (s *Service) Confirm(ctx context.Context, id, actorID string) (*models.BookingResponse, error) {
	return s.transition(ctx, id, actorID, domain.BookingStatusDraft, domain.BookingStatusConfirmed, "Confirm")
}

// Complete завершает бронирование (confirmed -> completed)
func (s *Service) Complete(ctx context.Context, id, actorID string) (*models.BookingResponse, error) {
	return s.transition(ctx, id, actorID, domain.BookingStatusConfirmed, domain.BookingStatusCompleted, "Complete")
}

// MarkNoShow отмечает неявку по бронированию (confirmed -> no_show)
func (s *Service) MarkNoShow(ctx context.Context, id, actorID string) (*models.BookingResponse, error) {
	return s.transition(ctx, id, actorID, domain.BookingStatusConfirmed, domain.BookingStatusNoShow, "MarkNoShow")
}

// Cancel отменяет бронирование
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by actor=%s", id, req.ActorID)

	if req.ActorID == "" {
		return nil, fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}
	if req.CancellationReason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()

	if err := s.bookingRepo.Cancel(ctx, id, req.ActorID, req.CancellationReason, now); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			// Конкурентная операция успела изменить статус
			s.logger.Warn("Cancel: booking id=%s status changed concurrently", id)
			return nil, ErrCannotCancel
		default:
			s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)

	s.publishEvent(ctx, events.TypeBookingCancelled, booking, req.ActorID, nil)

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(updated), nil
}

// UpdatePaymentStatus обновляет платёжный статус бронирования
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, req *models.UpdatePaymentStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePaymentStatus: booking id=%s, status=%s by actor=%s", id, req.PaymentStatus, req.ActorID)

	if req.ActorID == "" {
		return nil, fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}

	status := domain.PaymentStatus(req.PaymentStatus)
	if !domain.ValidPaymentStatus(status) {
		s.logger.Warn("UpdatePaymentStatus: invalid payment status=%s for booking id=%s", req.PaymentStatus, id)
		return nil, ErrInvalidPaymentStatus
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, id, status, req.ActorID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdatePaymentStatus: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdatePaymentStatus: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdatePaymentStatus: failed to reload booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePaymentStatus: successfully updated booking id=%s to %s", id, status)
	return models.FromDomainBooking(updated), nil
}

// transition выполняет переход статуса бронирования со статусным предикатом
func (s *Service) transition(ctx context.Context, id, actorID string, from, to domain.BookingStatus, op string) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%s by actor=%s", op, id, actorID)

	if actorID == "" {
		return nil, fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	if err := s.bookingRepo.UpdateStatus(ctx, id, from, to, actorID, now); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			s.logger.Warn("%s: booking id=%s is not in status=%s", op, id, from)
			return nil, ErrInvalidStatus
		default:
			s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("%s: failed to reload booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully moved booking id=%s to status=%s", op, id, to)
	return models.FromDomainBooking(updated), nil
}

// validateCreateRequest валидирует запрос на создание бронирования
func validateCreateRequest(req *models.CreateBookingRequest) error {
	if req.SalonID == "" {
		return fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}
	if req.ActorID == "" {
		return fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}
	if len(req.ReservationIDs) == 0 {
		return fmt.Errorf("%w: at least one reservation is required", ErrInvalidInput)
	}
	if req.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}
	if req.DiscountAmount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	seen := make(map[string]struct{}, len(req.ReservationIDs))
	for _, id := range req.ReservationIDs {
		if id == "" {
			return fmt.Errorf("%w: empty reservation id", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate reservation id=%s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// publishEvent публикует доменное событие (best-effort)
func (s *Service) publishEvent(ctx context.Context, eventType string, b *domain.Booking, actorID string, refund *int64) {
	if pubErr := s.publisher.Publish(ctx, events.Event{
		Type:         eventType,
		OccurredAt:   s.timeProvider.Now(),
		BookingID:    b.ID,
		SalonID:      b.SalonID,
		CustomerID:   b.CustomerID,
		ActorID:      actorID,
		RefundAmount: refund,
	}); pubErr != nil {
		s.logger.Error("publishEvent: failed to publish %s for booking id=%s: %v", eventType, b.ID, pubErr)
	}
}
