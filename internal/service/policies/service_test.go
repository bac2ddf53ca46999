package policies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	policyStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policies/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakePolicyRepo struct {
	policy   *domain.BookingPolicy
	upserted *domain.BookingPolicy
}

func (f *fakePolicyRepo) GetWithHierarchy(ctx context.Context, businessID int64, professionalID *int64, serviceID *int64) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, policyStorage.ErrPolicyNotFound
	}
	return f.policy, nil
}

func (f *fakePolicyRepo) Upsert(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	saved := *policy
	saved.ID = 1
	f.upserted = &saved
	return &saved, nil
}

type fakeDirectoryClient struct {
	business *directoryservice.Business
}

func (f *fakeDirectoryClient) GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error) {
	if f.business == nil {
		return nil, directoryservice.ErrBusinessNotFound
	}
	return f.business, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newService(repo *fakePolicyRepo, directory *fakeDirectoryClient) *Service {
	return NewService(repo, directory, nopLogger{})
}

func adminSession() domain.Session {
	return domain.Session{UserID: 100, Role: domain.RoleAdmin}
}

func validUpsertRequest() *models.UpsertPolicyRequest {
	return &models.UpsertPolicyRequest{
		Session:                 adminSession(),
		BusinessID:              10,
		SlotGranularityMinutes:  60,
		MinBookingNoticeMinutes: 30,
		LateCancelNoticeMinutes: 240,
		AdvanceBookingDays:      14,
	}
}

func TestGetEffectivePolicy_ReturnsConfigured(t *testing.T) {
	repo := &fakePolicyRepo{policy: &domain.BookingPolicy{
		ID:                      1,
		BusinessID:              10,
		SlotGranularityMinutes:  15,
		LateCancelNoticeMinutes: 60,
	}}
	svc := newService(repo, &fakeDirectoryClient{})

	resp, err := svc.GetEffectivePolicy(context.Background(), &models.GetPolicyRequest{BusinessID: 10})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.SlotGranularityMinutes)
	assert.False(t, resp.IsDefault)
}

func TestGetEffectivePolicy_FallsBackToDefaults(t *testing.T) {
	svc := newService(&fakePolicyRepo{}, &fakeDirectoryClient{})

	resp, err := svc.GetEffectivePolicy(context.Background(), &models.GetPolicyRequest{BusinessID: 10})
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultLateCancelNoticeMinutes, resp.LateCancelNoticeMinutes)
}

func TestUpsert_AdminSavesPolicy(t *testing.T) {
	repo := &fakePolicyRepo{}
	directory := &fakeDirectoryClient{business: &directoryservice.Business{ID: 10, AdminIDs: []int64{100}}}
	svc := newService(repo, directory)

	resp, err := svc.Upsert(context.Background(), validUpsertRequest())
	require.NoError(t, err)

	assert.Equal(t, 60, resp.SlotGranularityMinutes)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(10), repo.upserted.BusinessID)
}

func TestUpsert_ScopedPolicy(t *testing.T) {
	repo := &fakePolicyRepo{}
	directory := &fakeDirectoryClient{business: &directoryservice.Business{ID: 10, AdminIDs: []int64{100}}}
	svc := newService(repo, directory)

	req := validUpsertRequest()
	req.ProfessionalID = ptr.Ptr(int64(1))
	req.ServiceID = ptr.Ptr(int64(5))

	resp, err := svc.Upsert(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.ProfessionalID)
	assert.Equal(t, int64(1), *resp.ProfessionalID)
	require.NotNil(t, resp.ServiceID)
	assert.Equal(t, int64(5), *resp.ServiceID)
}

func TestUpsert_NonAdminDenied(t *testing.T) {
	directory := &fakeDirectoryClient{business: &directoryservice.Business{ID: 10, AdminIDs: []int64{100}}}
	svc := newService(&fakePolicyRepo{}, directory)

	tests := []struct {
		name    string
		session domain.Session
	}{
		{name: "клиент", session: domain.Session{UserID: 42, Role: domain.RoleClient}},
		{name: "сотрудник", session: domain.Session{UserID: 200, Role: domain.RoleStaff}},
		{name: "администратор другого бизнеса", session: domain.Session{UserID: 999, Role: domain.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpsertRequest()
			req.Session = tt.session

			_, err := svc.Upsert(context.Background(), req)
			assert.ErrorIs(t, err, ErrAccessDenied)
		})
	}
}

func TestUpsert_OutOfBoundsRejected(t *testing.T) {
	directory := &fakeDirectoryClient{business: &directoryservice.Business{ID: 10, AdminIDs: []int64{100}}}
	svc := newService(&fakePolicyRepo{}, directory)

	tests := []struct {
		name   string
		mutate func(*models.UpsertPolicyRequest)
	}{
		{name: "шаг сетки слишком маленький", mutate: func(r *models.UpsertPolicyRequest) { r.SlotGranularityMinutes = 1 }},
		{name: "шаг сетки слишком большой", mutate: func(r *models.UpsertPolicyRequest) { r.SlotGranularityMinutes = 500 }},
		{name: "отрицательное уведомление", mutate: func(r *models.UpsertPolicyRequest) { r.MinBookingNoticeMinutes = -1 }},
		{name: "горизонт записи больше года", mutate: func(r *models.UpsertPolicyRequest) { r.AdvanceBookingDays = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpsertRequest()
			tt.mutate(req)

			_, err := svc.Upsert(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpsert_BusinessNotFound(t *testing.T) {
	svc := newService(&fakePolicyRepo{}, &fakeDirectoryClient{})

	_, err := svc.Upsert(context.Background(), validUpsertRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
