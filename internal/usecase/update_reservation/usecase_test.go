package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
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

func (r *fakeReservationRepo) Update(_ context.Context, res *domain.Reservation) error {
	stored, ok := r.reservations[res.ID]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	*stored = *res
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeReservationRepo) CheckTimeSlotConflict(_ context.Context, staffID string, start, end time.Time, excludeID *string) (bool, error) {
	for _, res := range r.reservations {
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if res.StaffID != staffID || !res.OccupiesSlot() {
			continue
		}
		if res.StartTime.Before(end) && start.Before(res.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

type fakeTxManager struct{}

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

func newTestUseCase(repo *fakeReservationRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func storedReservation(id string, start time.Time, durationMinutes int) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		SalonID:     "salon-1",
		CustomerID:  "customer-1",
		StaffID:     "staff-1",
		ServiceID:   "service-1",
		StartTime:   start,
		EndTime:     start.Add(time.Duration(durationMinutes) * time.Minute),
		TotalAmount: 10000,
		Status:      domain.StatusConfirmed,
	}
}

func TestExecute_ReschedulePreservesDuration(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", start, 90),
	}}
	uc := newTestUseCase(repo, now)

	newStart := time.Date(2026, 9, 16, 14, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "customer-1",
		StartTime:     &newStart,
	})

	require.NoError(t, err)
	assert.Equal(t, newStart, resp.StartTime)
	assert.Equal(t, newStart.Add(90*time.Minute), resp.EndTime)
	assert.Equal(t, newStart, repo.reservations["res-1"].StartTime)
}

func TestExecute_RescheduleIntoOccupiedSlot(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), 60),
		"res-2": storedReservation("res-2", time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC), 60),
	}}
	uc := newTestUseCase(repo, now)

	newStart := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "customer-1",
		StartTime:     &newStart,
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	// Запись осталась на прежнем времени
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), repo.reservations["res-1"].StartTime)
}

// Перенос на собственное время не конфликтует сам с собой
func TestExecute_RescheduleOntoOwnSlot(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", start, 60),
	}}
	uc := newTestUseCase(repo, now)

	newStart := start.Add(30 * time.Minute)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "customer-1",
		StartTime:     &newStart,
	})

	require.NoError(t, err)
	assert.Equal(t, newStart, resp.StartTime)
}

func TestExecute_UpdateNotesAndDeposit(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", start, 60),
	}}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "admin-1",
		Notes:         ptr.Ptr("аллергия на краску"),
		DepositAmount: ptr.Ptr(int64(3000)),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "аллергия на краску", *resp.Notes)
	require.NotNil(t, resp.DepositAmount)
	assert.Equal(t, int64(3000), *resp.DepositAmount)
	// Время не менялось
	assert.Equal(t, start, resp.StartTime)
}

func TestExecute_DepositAboveTotal(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", start, 60),
	}}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "admin-1",
		DepositAmount: ptr.Ptr(int64(20000)),
	})

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Nil(t, repo.reservations["res-1"].DepositAmount)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	completed := storedReservation("res-1", start, 60)
	completed.Status = domain.StatusCompleted

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{"res-1": completed}}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "admin-1",
		Notes:         ptr.Ptr("поздно"),
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_RescheduleIntoPast(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{reservations: map[string]*domain.Reservation{
		"res-1": storedReservation("res-1", start, 60),
	}}
	uc := newTestUseCase(repo, now)

	past := now.Add(-time.Hour)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "customer-1",
		StartTime:     &past,
	})

	assert.ErrorIs(t, err, ErrPastTimeNotAllowed)
}

func TestExecute_NothingToUpdate(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeReservationRepo{reservations: map[string]*domain.Reservation{}}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       "customer-1",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotFound(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeReservationRepo{reservations: map[string]*domain.Reservation{}}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: "missing",
		ActorID:       "customer-1",
		Notes:         ptr.Ptr("заметка"),
	})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}
