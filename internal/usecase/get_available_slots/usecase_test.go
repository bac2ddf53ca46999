package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
)

type fakeAppointmentRepo struct {
	appointments map[string][]*domain.Appointment // ключ - дата YYYY-MM-DD
	err          error
}

func (f *fakeAppointmentRepo) GetByProfessionalWithFilter(ctx context.Context, filter domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if filter.Date == nil {
		return nil, nil
	}
	return f.appointments[filter.Date.Format("2006-01-02")], nil
}

type fakeScheduleRepo struct {
	entries []*domain.WeeklyAvailability
	err     error
}

func (f *fakeScheduleRepo) GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.WeeklyAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
	err    error
}

func (f *fakePolicyRepo) GetWithHierarchy(ctx context.Context, businessID int64, professionalID *int64, serviceID *int64) (*domain.BookingPolicy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.policy, nil
}

type fakeDirectoryClient struct {
	professional    *directoryservice.Professional
	professionalErr error
	service         *directoryservice.Service
	serviceErr      error
}

func (f *fakeDirectoryClient) GetProfessional(ctx context.Context, professionalID int64) (*directoryservice.Professional, error) {
	if f.professionalErr != nil {
		return nil, f.professionalErr
	}
	return f.professional, nil
}

func (f *fakeDirectoryClient) GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type useCaseFixture struct {
	apptRepo     *fakeAppointmentRepo
	scheduleRepo *fakeScheduleRepo
	policyRepo   *fakePolicyRepo
	directory    *fakeDirectoryClient
	timeProvider *fixedTimeProvider
}

func newFixture() *useCaseFixture {
	// Понедельник и вторник 08:00-18:00, услуга 60 минут
	return &useCaseFixture{
		apptRepo: &fakeAppointmentRepo{appointments: map[string][]*domain.Appointment{}},
		scheduleRepo: &fakeScheduleRepo{entries: []*domain.WeeklyAvailability{
			entry(1, "08:00", "18:00"),
			entry(2, "08:00", "18:00"),
		}},
		policyRepo: &fakePolicyRepo{err: policy.ErrPolicyNotFound},
		directory: &fakeDirectoryClient{
			professional: &directoryservice.Professional{ID: 1, BusinessID: 10, Active: true},
			service: &directoryservice.Service{
				ID:              5,
				BusinessID:      10,
				DurationMinutes: 60,
				ProfessionalIDs: []int64{1},
			},
		},
		timeProvider: &fixedTimeProvider{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func (f *useCaseFixture) useCase() *UseCase {
	return NewUseCase(f.apptRepo, f.scheduleRepo, f.policyRepo, f.directory, f.timeProvider, nopLogger{})
}

func TestExecute_ReturnsSlotsForWorkingDay(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	// 7 сентября 2026 - понедельник
	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 19)
	assert.Equal(t, "08:00", resp.Slots[0].String())
	assert.Equal(t, "17:00", resp.Slots[len(resp.Slots)-1].String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.False(t, resp.RolledOver())
}

func TestExecute_NonWorkingWeekdayReturnsEmpty(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	// 6 сентября 2026 - воскресенье, записи в расписании нет
	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.False(t, resp.RolledOver())
}

func TestExecute_ExcludesBookedSlots(t *testing.T) {
	f := newFixture()
	f.apptRepo.appointments["2026-09-07"] = []*domain.Appointment{
		activeAppointment("10:00", 60),
	}
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	got := asStrings(resp.Slots)
	assert.NotContains(t, got, "09:30")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:30")
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "11:00")
}

func TestExecute_SameDayExhaustedRollsToTomorrow(t *testing.T) {
	f := newFixture()
	// Сейчас вечер понедельника - рабочий день уже закончился
	f.timeProvider.now = time.Date(2026, 9, 7, 19, 0, 0, 0, time.UTC)
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, resp.RolledOver())
	assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), resp.EffectiveDate)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "08:00", resp.Slots[0].String())
}

func TestExecute_CustomPolicyGranularity(t *testing.T) {
	f := newFixture()
	f.policyRepo = &fakePolicyRepo{policy: &domain.BookingPolicy{
		BusinessID:              10,
		SlotGranularityMinutes:  60,
		MinBookingNoticeMinutes: 0,
		LateCancelNoticeMinutes: 120,
	}}
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 10)
	assert.Equal(t, "08:00", resp.Slots[0].String())
	assert.Equal(t, "17:00", resp.Slots[len(resp.Slots)-1].String())
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	f := newFixture()
	f.directory.professionalErr = directoryservice.ErrProfessionalNotFound
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 99,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_ProfessionalInactive(t *testing.T) {
	f := newFixture()
	f.directory.professional.Active = false
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrProfessionalInactive)
}

func TestExecute_ServiceNotOfferedByProfessional(t *testing.T) {
	f := newFixture()
	f.directory.service.ProfessionalIDs = []int64{2, 3}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondAdvanceLimit(t *testing.T) {
	f := newFixture()
	f.policyRepo = &fakePolicyRepo{policy: &domain.BookingPolicy{
		BusinessID:             10,
		SlotGranularityMinutes: 30,
		AdvanceBookingDays:     7,
	}}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "нулевой professionalID",
			req:  &Request{ServiceID: 5, Date: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "нулевой serviceID",
			req:  &Request{ProfessionalID: 1, Date: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "пустая дата",
			req:  &Request{ProfessionalID: 1, ServiceID: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture()
	f.apptRepo.appointments["2026-09-07"] = []*domain.Appointment{
		activeAppointment("09:00", 60),
		activeAppointment("14:30", 60),
	}
	uc := f.useCase()

	req := &Request{
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, first.EffectiveDate, second.EffectiveDate)
}
