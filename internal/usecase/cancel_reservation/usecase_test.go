package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	"github.com/salonhq/SLN-ReservationService/pkg/ptr"
)

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

func (r *fakeReservationRepo) Cancel(_ context.Context, id, actor, reason string, at time.Time) error {
	res, ok := r.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if !res.CanBeCancelled() {
		return reservationRepo.ErrStatusConflict
	}
	res.Status = domain.StatusCancelled
	res.CancelledAt = ptr.Ptr(at)
	res.CancelledBy = ptr.Ptr(actor)
	res.CancellationReason = ptr.Ptr(reason)
	res.UpdatedAt = at
	res.UpdatedBy = actor
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeReservationRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, events.NewNoopPublisher(), noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func storedReservation(start time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:          "res-1",
		SalonID:     "salon-1",
		CustomerID:  "customer-1",
		StaffID:     "staff-1",
		ServiceID:   "service-1",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		TotalAmount: 10000,
		Status:      domain.StatusConfirmed,
	}
}

func validRequest() *Request {
	return &Request{
		ReservationID: "res-1",
		ActorID:       "customer-1",
		Reason:        "передумал",
	}
}

func TestExecute_RefundForPaidReservation(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	// За 30 часов до начала - возврат 70%
	res := storedReservation(now.Add(30 * time.Hour))
	res.Paid = true

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{"res-1": res}}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ReservationID)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, int64(7000), resp.RefundAmount)
	assert.Equal(t, now, resp.CancelledAt)

	assert.Equal(t, domain.StatusCancelled, res.Status)
	require.NotNil(t, res.CancellationReason)
	assert.Equal(t, "передумал", *res.CancellationReason)
}

func TestExecute_RefundBaseIsDepositWhenUnpaid(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	// За 50 часов - полный возврат, но базой служит депозит
	res := storedReservation(now.Add(50 * time.Hour))
	res.DepositAmount = ptr.Ptr(int64(3000))

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{"res-1": res}}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(3000), resp.RefundAmount)
}

func TestExecute_NoRefundWhenNothingPaid(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	res := storedReservation(now.Add(72 * time.Hour))

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{"res-1": res}}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Zero(t, resp.RefundAmount)
}

func TestExecute_TooLateToCancel(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	// До начала 30 минут - меньше минимального времени отмены
	res := storedReservation(now.Add(30 * time.Minute))
	res.Paid = true

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{"res-1": res}}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
}

func TestExecute_DoubleCancellation(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	res := storedReservation(now.Add(72 * time.Hour))
	res.Paid = true

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{"res-1": res}}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повторная отмена не начисляет возврат второй раз
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{}}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ReasonIsRequired(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	res := storedReservation(now.Add(72 * time.Hour))

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{"res-1": res}}
	uc := newTestUseCase(repo, now)

	req := validRequest()
	req.Reason = "   "

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
}
