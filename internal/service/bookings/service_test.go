package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	bookingRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/booking"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
	"github.com/salonhq/SLN-ReservationService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	stored := *booking
	r.bookings[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByCustomer(_ context.Context, salonID, customerID string, _ domain.Pagination) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.SalonID == salonID && b.CustomerID == customerID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus, actor string, at time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = at
	b.UpdatedBy = actor
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id, actor, reason string, at time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if !b.CanBeCancelled() {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.BookingStatusCancelled
	b.CancelledAt = ptr.Ptr(at)
	b.CancelledBy = ptr.Ptr(actor)
	b.CancellationReason = ptr.Ptr(reason)
	return nil
}

func (r *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, id string, status domain.PaymentStatus, actor string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentStatus = status
	b.UpdatedBy = actor
	return nil
}

type fakeReservationRepo struct {
	reservations map[string]*domain.Reservation
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(bookings *fakeBookingRepo, reservations *fakeReservationRepo, now time.Time) *Service {
	svc := NewService(bookings, reservations, fakeTxManager{}, events.NewNoopPublisher(), noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func storedReservation(id string, amount int64) *domain.Reservation {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:          id,
		SalonID:     "salon-1",
		CustomerID:  "customer-1",
		StaffID:     "staff-1",
		ServiceID:   "service-1",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		TotalAmount: amount,
		Status:      domain.StatusConfirmed,
	}
}

func storedBooking(id string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		SalonID:        "salon-1",
		CustomerID:     "customer-1",
		ReservationIDs: []string{"res-1"},
		TotalAmount:    10000,
		FinalAmount:    10000,
		PaymentMethod:  "card",
		PaymentStatus:  domain.PaymentStatusPending,
		Status:         status,
	}
}

func validCreateRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		SalonID:        "salon-1",
		CustomerID:     "customer-1",
		ActorID:        "customer-1",
		ReservationIDs: []string{"res-1", "res-2"},
		DiscountAmount: 2000,
		PaymentMethod:  "card",
	}
}

func TestCreate(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
	reservations := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", 10000),
		"res-2": storedReservation("res-2", 5000),
	}}
	svc := newTestService(bookings, reservations, now)

	resp, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.BookingStatusDraft), resp.Status)
	assert.Equal(t, string(domain.PaymentStatusPending), resp.PaymentStatus)
	// Сумма складывается из записей, скидка вычитается
	assert.Equal(t, int64(15000), resp.TotalAmount)
	assert.Equal(t, int64(2000), resp.DiscountAmount)
	assert.Equal(t, int64(13000), resp.FinalAmount)
	assert.Len(t, bookings.bookings, 1)
}

func TestCreate_ValidationFailures(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(req *models.CreateBookingRequest)
	}{
		{"missing salon id", func(req *models.CreateBookingRequest) { req.SalonID = "" }},
		{"missing actor id", func(req *models.CreateBookingRequest) { req.ActorID = "" }},
		{"no reservations", func(req *models.CreateBookingRequest) { req.ReservationIDs = nil }},
		{"duplicate reservation ids", func(req *models.CreateBookingRequest) {
			req.ReservationIDs = []string{"res-1", "res-1"}
		}},
		{"missing payment method", func(req *models.CreateBookingRequest) { req.PaymentMethod = "" }},
		{"negative discount", func(req *models.CreateBookingRequest) { req.DiscountAmount = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
			reservations := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
				"res-1": storedReservation("res-1", 10000),
				"res-2": storedReservation("res-2", 5000),
			}}
			svc := newTestService(bookings, reservations, now)

			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, bookings.bookings)
		})
	}
}

func TestCreate_ReservationNotFound(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
	reservations := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", 10000),
	}}
	svc := newTestService(bookings, reservations, now)

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Empty(t, bookings.bookings)
}

func TestCreate_ReservationOfAnotherCustomer(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	foreign := storedReservation("res-2", 5000)
	foreign.CustomerID = "customer-2"

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
	reservations := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", 10000),
		"res-2": foreign,
	}}
	svc := newTestService(bookings, reservations, now)

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrReservationMismatch)
	assert.Empty(t, bookings.bookings)
}

func TestCreate_DiscountAboveTotal(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
	reservations := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", 10000),
		"res-2": storedReservation("res-2", 5000),
	}}
	svc := newTestService(bookings, reservations, now)

	req := validCreateRequest()
	req.DiscountAmount = 20000

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInconsistentAmounts)
	assert.Empty(t, bookings.bookings)
}

func TestStatusTransitions(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"bk-1": storedBooking("bk-1", domain.BookingStatusDraft),
	}}
	svc := newTestService(bookings, &fakeReservationRepo{}, now)

	resp, err := svc.Confirm(context.Background(), "bk-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusConfirmed), resp.Status)

	// Завершение из draft невозможно - нужен confirmed, повторное
	// подтверждение тоже отклоняется
	_, err = svc.Confirm(context.Background(), "bk-1", "admin-1")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	resp, err = svc.Complete(context.Background(), "bk-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCompleted), resp.Status)

	_, err = svc.MarkNoShow(context.Background(), "bk-1", "admin-1")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"bk-1": storedBooking("bk-1", domain.BookingStatusConfirmed),
	}}
	svc := newTestService(bookings, &fakeReservationRepo{}, now)

	resp, err := svc.Cancel(context.Background(), "bk-1", &models.CancelBookingRequest{
		ActorID:            "customer-1",
		CancellationReason: "изменились планы",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "изменились планы", *resp.CancellationReason)

	// Повторная отмена отклоняется
	_, err = svc.Cancel(context.Background(), "bk-1", &models.CancelBookingRequest{
		ActorID:            "customer-1",
		CancellationReason: "изменились планы",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ReasonRequired(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"bk-1": storedBooking("bk-1", domain.BookingStatusConfirmed),
	}}
	svc := newTestService(bookings, &fakeReservationRepo{}, now)

	_, err := svc.Cancel(context.Background(), "bk-1", &models.CancelBookingRequest{
		ActorID: "customer-1",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, domain.BookingStatusConfirmed, bookings.bookings["bk-1"].Status)
}

func TestUpdatePaymentStatus(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"bk-1": storedBooking("bk-1", domain.BookingStatusConfirmed),
	}}
	svc := newTestService(bookings, &fakeReservationRepo{}, now)

	resp, err := svc.UpdatePaymentStatus(context.Background(), "bk-1", &models.UpdatePaymentStatusRequest{
		ActorID:       "admin-1",
		PaymentStatus: "paid",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentStatusPaid), resp.PaymentStatus)

	_, err = svc.UpdatePaymentStatus(context.Background(), "bk-1", &models.UpdatePaymentStatusRequest{
		ActorID:       "admin-1",
		PaymentStatus: "partially_paid",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestGetCustomerBookings(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	other := storedBooking("bk-2", domain.BookingStatusConfirmed)
	other.CustomerID = "customer-2"

	bookings := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"bk-1": storedBooking("bk-1", domain.BookingStatusConfirmed),
		"bk-2": other,
	}}
	svc := newTestService(bookings, &fakeReservationRepo{}, now)

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		SalonID:    "salon-1",
		CustomerID: "customer-1",
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "bk-1", resp.Bookings[0].ID)

	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: "customer-1",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
