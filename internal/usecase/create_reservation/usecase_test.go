package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	"github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
	"github.com/salonhq/SLN-ReservationService/pkg/ptr"
)

// fakeReservationRepo хранит записи в памяти
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	createErr    error // подменяет результат Create, если задана
}

func (r *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	stored := *res
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.reservations = append(r.reservations, &stored)
	return &stored, nil
}

func (r *fakeReservationRepo) GetByStaffAndDateRange(_ context.Context, staffID string, from, to time.Time) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Reservation
	for _, res := range r.reservations {
		if res.StaffID == staffID && res.StartTime.Before(to) && res.EndTime.After(from) {
			result = append(result, res)
		}
	}
	return result, nil
}

// fakeTxManager сериализует транзакции мьютексом - как сериализуемые
// транзакции базы, конкурентные check-then-insert не перемешиваются
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	staff   *catalogservice.Staff
}

func (c *fakeCatalogClient) GetService(_ context.Context, _, _ string) (*catalogservice.Service, error) {
	if c.service == nil {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

func (c *fakeCatalogClient) GetStaff(_ context.Context, _, _ string) (*catalogservice.Staff, error) {
	if c.staff == nil {
		return nil, catalogservice.ErrStaffNotFound
	}
	return c.staff, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func workingEveryDay(open, close string) catalogservice.WeekSchedule {
	day := catalogservice.DaySchedule{
		IsWorking: true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
	}
	return catalogservice.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func newTestUseCase(repo *fakeReservationRepo, now time.Time) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeCatalogClient{
			service: &catalogservice.Service{
				ID:                    "service-1",
				SalonID:               "salon-1",
				Name:                  "Стрижка",
				DurationMinutes:       60,
				PriceAmount:           10000,
				OvertimeRatePerMinute: 50,
			},
			staff: &catalogservice.Staff{
				ID:           "staff-1",
				SalonID:      "salon-1",
				Name:         "Мастер",
				WorkingHours: workingEveryDay("09:00", "18:00"),
			},
		},
		&fakeTxManager{},
		events.NewNoopPublisher(),
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest(start time.Time) *Request {
	return &Request{
		SalonID:    "salon-1",
		CustomerID: "customer-1",
		StaffID:    "staff-1",
		ServiceID:  "service-1",
		StartTime:  start,
		ActorID:    "customer-1",
	}
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), validRequest(start))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, start, resp.StartTime)
	assert.Equal(t, start.Add(time.Hour), resp.EndTime)
	assert.Equal(t, int64(10000), resp.TotalAmount)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_AutoConfirm(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	req := validRequest(start)
	req.AutoConfirm = true

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, repo.reservations[0].ConfirmedAt)
	assert.Equal(t, "customer-1", *repo.reservations[0].ConfirmedBy)
}

func TestExecute_SlotConflict(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), validRequest(start))
	require.NoError(t, err)

	// Второй клиент на пересекающееся время
	req := validRequest(start.Add(30 * time.Minute))
	req.CustomerID = "customer-2"
	req.ActorID = "customer-2"

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_TouchingSlotsDoNotConflict(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), validRequest(start))
	require.NoError(t, err)

	// Запись встык: начало ровно в конец предыдущей
	_, err = uc.Execute(context.Background(), validRequest(start.Add(time.Hour)))
	require.NoError(t, err)
	assert.Len(t, repo.reservations, 2)
}

func TestExecute_CancelledReservationReleasesSlot(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), validRequest(start))
	require.NoError(t, err)

	repo.reservations[0].Status = domain.StatusCancelled

	_, err = uc.Execute(context.Background(), validRequest(start))
	require.NoError(t, err)
	assert.Len(t, repo.reservations, 2)
}

func TestExecute_ValidationFailures(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			"past start time",
			func(req *Request) { req.StartTime = now.Add(-time.Hour) },
			ErrPastTimeNotAllowed,
		},
		{
			"beyond booking horizon",
			func(req *Request) { req.StartTime = now.AddDate(0, 4, 0) },
			ErrInvalidTimeRange,
		},
		{
			"before opening",
			func(req *Request) { req.StartTime = time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC) },
			ErrOutsideWorkingHours,
		},
		{
			"runs past closing",
			func(req *Request) { req.StartTime = time.Date(2026, 9, 15, 17, 30, 0, 0, time.UTC) },
			ErrOutsideWorkingHours,
		},
		{
			"deposit above total",
			func(req *Request) { req.DepositAmount = ptr.Ptr(int64(20000)) },
			ErrInvalidAmount,
		},
		{
			"negative deposit",
			func(req *Request) { req.DepositAmount = ptr.Ptr(int64(-1)) },
			ErrInvalidAmount,
		},
		{
			"missing customer id",
			func(req *Request) { req.CustomerID = "" },
			ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeReservationRepo{}
			uc := newTestUseCase(repo, now)

			req := validRequest(time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.reservations)
		})
	}
}

func TestExecute_StaffNotWorkingOnClosedDay(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	// 20 сентября 2026 - воскресенье
	start := time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	schedule := workingEveryDay("09:00", "18:00")
	schedule.Sunday = catalogservice.DaySchedule{IsWorking: false}
	uc.catalogClient.(*fakeCatalogClient).staff.WorkingHours = schedule

	_, err := uc.Execute(context.Background(), validRequest(start))
	assert.ErrorIs(t, err, ErrStaffNotWorking)
}

// Проигравшая гонку вставка падает на exclusion constraint схемы
// (репозиторий возвращает ErrSlotConflict) - для клиента это тот же
// конфликт слота, а не внутренняя ошибка
func TestExecute_InsertLosingRaceMapsToSlotNotAvailable(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{createErr: reservationRepo.ErrSlotConflict}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), validRequest(start))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)
}

// Ровно одна из конкурентных попыток занять один слот должна пройти
func TestExecute_ConcurrentCreationSameSlot(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	const workers = 10

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest(start))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.reservations, 1)
}
