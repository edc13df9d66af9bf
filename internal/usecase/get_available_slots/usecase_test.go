package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
	"github.com/salonhq/SLN-ReservationService/pkg/ptr"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (r *fakeReservationRepo) GetByStaffAndDateRange(_ context.Context, staffID string, from, to time.Time) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, res := range r.reservations {
		if res.StaffID == staffID && res.StartTime.Before(to) && res.EndTime.After(from) {
			result = append(result, res)
		}
	}
	return result, nil
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

func newTestUseCase(repo *fakeReservationRepo, now time.Time, allowPast bool) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeCatalogClient{
			service: &catalogservice.Service{
				ID:              "service-1",
				SalonID:         "salon-1",
				Name:            "Стрижка",
				DurationMinutes: 60,
				PriceAmount:     10000,
			},
			staff: &catalogservice.Staff{
				ID:           "staff-1",
				SalonID:      "salon-1",
				WorkingHours: workingEveryDay("09:00", "18:00"),
			},
		},
		allowPast,
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func slotStarts(slots []domain.AvailableSlot) []time.Time {
	starts := make([]time.Time, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

func TestExecute_FullyFreeDay(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeReservationRepo{}, now, false)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: "salon-1", StaffID: "staff-1", ServiceID: "service-1", Date: date,
	})

	require.NoError(t, err)
	// 09:00-18:00 при услуге на час - девять слотов
	assert.Len(t, resp.Slots, 9)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 15, 17, 0, 0, 0, time.UTC), resp.Slots[8].StartTime)
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:        "res-1",
				StaffID:   "staff-1",
				StartTime: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC),
				Status:    domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(repo, now, false)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: "salon-1", StaffID: "staff-1", ServiceID: "service-1", Date: date,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)

	starts := slotStarts(resp.Slots)
	assert.Contains(t, starts, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC))
	assert.NotContains(t, starts, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))
	// Слот встык после занятого доступен
	assert.Contains(t, starts, time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC))
}

func TestExecute_CancelledReservationFreesSlot(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:        "res-1",
				StaffID:   "staff-1",
				StartTime: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC),
				Status:    domain.StatusCancelled,
			},
		},
	}
	uc := newTestUseCase(repo, now, false)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: "salon-1", StaffID: "staff-1", ServiceID: "service-1", Date: date,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	// 20 сентября 2026 - воскресенье
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeReservationRepo{}, now, false)

	schedule := workingEveryDay("09:00", "18:00")
	schedule.Sunday = catalogservice.DaySchedule{IsWorking: false}
	uc.catalogClient.(*fakeCatalogClient).staff.WorkingHours = schedule

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: "salon-1", StaffID: "staff-1", ServiceID: "service-1", Date: date,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	// По умолчанию прошлые даты отклоняются
	uc := newTestUseCase(&fakeReservationRepo{}, now, false)
	_, err := uc.Execute(context.Background(), &Request{
		SalonID: "salon-1", StaffID: "staff-1", ServiceID: "service-1", Date: date,
	})
	assert.ErrorIs(t, err, ErrDateInPast)

	// С флагом конфигурации - разрешаются
	uc = newTestUseCase(&fakeReservationRepo{}, now, true)
	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: "salon-1", StaffID: "staff-1", ServiceID: "service-1", Date: date,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 9)
}

func TestGenerateSlotStarts_SlotMustFitBeforeClosing(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	schedule := catalogservice.DaySchedule{
		IsWorking: true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("12:30"),
	}

	// 90-минутная услуга в окно 09:00-12:30: 09:00 и 10:30, на 12:00 уже не влезает
	slots, err := generateSlotStarts("staff-1", schedule, date, 90)

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), slots[1].StartTime)
	assert.Equal(t, "staff-1", slots[0].StaffID)
	assert.Equal(t, 90, slots[0].DurationMinutes())
}
