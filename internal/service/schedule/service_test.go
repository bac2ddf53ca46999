package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeScheduleRepo struct {
	entries  []*domain.WeeklyAvailability
	replaced []*domain.WeeklyAvailability
}

func (f *fakeScheduleRepo) GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.WeeklyAvailability, error) {
	return f.entries, nil
}

func (f *fakeScheduleRepo) ReplaceAll(ctx context.Context, professionalID int64, entries []*domain.WeeklyAvailability) error {
	f.replaced = entries
	f.entries = entries
	return nil
}

type fakeDirectoryClient struct {
	business     *directoryservice.Business
	professional *directoryservice.Professional
}

func (f *fakeDirectoryClient) GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error) {
	if f.business == nil {
		return nil, directoryservice.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeDirectoryClient) GetProfessional(ctx context.Context, professionalID int64) (*directoryservice.Professional, error) {
	if f.professional == nil {
		return nil, directoryservice.ErrProfessionalNotFound
	}
	return f.professional, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	repo      *fakeScheduleRepo
	directory *fakeDirectoryClient
	txManager *fakeTxManager
}

func newFixture() *fixture {
	return &fixture{
		repo: &fakeScheduleRepo{entries: []*domain.WeeklyAvailability{
			{ProfessionalID: 1, DayOfWeek: 1, StartTime: types.TimeString("08:00"), EndTime: types.TimeString("18:00")},
		}},
		directory: &fakeDirectoryClient{
			business:     &directoryservice.Business{ID: 10, AdminIDs: []int64{100}, StaffIDs: []int64{200}},
			professional: &directoryservice.Professional{ID: 1, BusinessID: 10, UserID: 300, Active: true},
		},
		txManager: &fakeTxManager{},
	}
}

func (f *fixture) service() *Service {
	return NewService(f.repo, f.directory, f.txManager, nopLogger{})
}

func validReplaceRequest(session domain.Session) *models.ReplaceScheduleRequest {
	return &models.ReplaceScheduleRequest{
		Session:        session,
		ProfessionalID: 1,
		Entries: []models.ScheduleEntry{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		},
	}
}

func TestGetSchedule_ReturnsEntries(t *testing.T) {
	f := newFixture()
	svc := f.service()

	resp, err := svc.GetSchedule(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 1, resp.Entries[0].DayOfWeek)
	assert.Equal(t, "08:00", resp.Entries[0].StartTime)
}

func TestGetSchedule_ProfessionalNotFound(t *testing.T) {
	f := newFixture()
	f.directory.professional = nil
	svc := f.service()

	_, err := svc.GetSchedule(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestReplace_ProfessionalUpdatesOwnSchedule(t *testing.T) {
	f := newFixture()
	svc := f.service()

	resp, err := svc.Replace(context.Background(), validReplaceRequest(domain.Session{UserID: 300, Role: domain.RoleProfessional}))
	require.NoError(t, err)

	assert.Len(t, resp.Entries, 2)
	assert.Len(t, f.repo.replaced, 2)
	assert.Equal(t, 1, f.txManager.calls)
}

func TestReplace_AdminUpdatesAnySchedule(t *testing.T) {
	f := newFixture()
	svc := f.service()

	_, err := svc.Replace(context.Background(), validReplaceRequest(domain.Session{UserID: 100, Role: domain.RoleAdmin}))
	assert.NoError(t, err)
}

func TestReplace_ClientDenied(t *testing.T) {
	f := newFixture()
	svc := f.service()

	_, err := svc.Replace(context.Background(), validReplaceRequest(domain.Session{UserID: 42, Role: domain.RoleClient}))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReplace_StaffDenied(t *testing.T) {
	// Сотрудник без прав администратора не управляет расписанием
	f := newFixture()
	svc := f.service()

	_, err := svc.Replace(context.Background(), validReplaceRequest(domain.Session{UserID: 200, Role: domain.RoleStaff}))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReplace_OtherProfessionalDenied(t *testing.T) {
	// Профессионал не может менять чужое расписание
	f := newFixture()
	svc := f.service()

	_, err := svc.Replace(context.Background(), validReplaceRequest(domain.Session{UserID: 999, Role: domain.RoleProfessional}))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReplace_DuplicateWeekdayRejected(t *testing.T) {
	f := newFixture()
	svc := f.service()

	req := validReplaceRequest(domain.Session{UserID: 300, Role: domain.RoleProfessional})
	req.Entries = []models.ScheduleEntry{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00"},
	}

	_, err := svc.Replace(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateWeekday)
	assert.Nil(t, f.repo.replaced)
}

func TestReplace_InvalidEntryRejected(t *testing.T) {
	f := newFixture()
	svc := f.service()

	tests := []struct {
		name  string
		entry models.ScheduleEntry
	}{
		{name: "начало после конца", entry: models.ScheduleEntry{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"}},
		{name: "некорректный день недели", entry: models.ScheduleEntry{DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00"}},
		{name: "некорректное время", entry: models.ScheduleEntry{DayOfWeek: 1, StartTime: "9am", EndTime: "18:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validReplaceRequest(domain.Session{UserID: 300, Role: domain.RoleProfessional})
			req.Entries = []models.ScheduleEntry{tt.entry}

			_, err := svc.Replace(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestReplace_EmptySetAllowed(t *testing.T) {
	// Пустое расписание означает "не принимает записи"
	f := newFixture()
	svc := f.service()

	req := validReplaceRequest(domain.Session{UserID: 300, Role: domain.RoleProfessional})
	req.Entries = nil

	resp, err := svc.Replace(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
}
