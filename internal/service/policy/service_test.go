package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-SlotService/internal/service/policy/models"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakePolicyRepo struct {
	stored map[string]*domain.SlotPolicy
	nextID int64
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{stored: make(map[string]*domain.SlotPolicy), nextID: 1}
}

func (r *fakePolicyRepo) Upsert(_ context.Context, p *domain.SlotPolicy) (*domain.SlotPolicy, error) {
	stored := *p
	if existing, ok := r.stored[p.Scope.String()]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = r.nextID
		r.nextID++
	}
	r.stored[p.Scope.String()] = &stored
	return &stored, nil
}

func (r *fakePolicyRepo) GetByScope(_ context.Context, scope domain.Scope) (*domain.SlotPolicy, error) {
	p, ok := r.stored[scope.String()]
	if !ok {
		return nil, policyRepo.ErrPolicyNotFound
	}
	return p, nil
}

func mustHours(t *testing.T, start, end string) *domain.DayHours {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return &domain.DayHours{Start: s, End: e}
}

func validRequest(t *testing.T) *models.UpsertPolicyRequest {
	t.Helper()
	return &models.UpsertPolicyRequest{
		ServiceID:              ptr.Ptr(int64(42)),
		SlotSizeMinutes:        30,
		MaxPerSlot:             3,
		OperatingHours:         domain.WeekSchedule{Monday: mustHours(t, "09:00", "18:00")},
		BookingLeadTimeMinutes: 60,
		CancelCutoffMinutes:    60,
	}
}

func TestUpsert_CreatesPolicy(t *testing.T) {
	svc := NewService(newFakePolicyRepo(), nopLogger{})

	resp, err := svc.Upsert(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	require.NotNil(t, resp.ServiceID)
	assert.Equal(t, int64(42), *resp.ServiceID)
	assert.Nil(t, resp.CampaignID)
	assert.Equal(t, 30, resp.SlotSizeMinutes)
}

func TestUpsert_ReplacesExistingPolicy(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, nopLogger{})

	first, err := svc.Upsert(context.Background(), validRequest(t))
	require.NoError(t, err)

	updated := validRequest(t)
	updated.SlotSizeMinutes = 60
	second, err := svc.Upsert(context.Background(), updated)
	require.NoError(t, err)

	// Та же политика, перезаписанные поля
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 60, second.SlotSizeMinutes)
	assert.Len(t, repo.stored, 1)
}

func TestUpsert_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, req *models.UpsertPolicyRequest)
	}{
		{
			name: "no scope reference",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.ServiceID = nil
			},
		},
		{
			name: "both scope references",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.CampaignID = ptr.Ptr(int64(7))
			},
		},
		{
			name: "slot size too small",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.SlotSizeMinutes = domain.MinSlotSizeMinutes - 1
			},
		},
		{
			name: "slot size too large",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.SlotSizeMinutes = domain.MaxSlotSizeMinutes + 1
			},
		},
		{
			name: "zero capacity",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.MaxPerSlot = 0
			},
		},
		{
			name: "negative lead time",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.BookingLeadTimeMinutes = -1
			},
		},
		{
			name: "negative cancel cutoff",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.CancelCutoffMinutes = -1
			},
		},
		{
			name: "start not before end",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.OperatingHours.Monday = mustHours(t, "18:00", "09:00")
			},
		},
		{
			name: "empty interval",
			mutate: func(t *testing.T, req *models.UpsertPolicyRequest) {
				req.OperatingHours.Monday = mustHours(t, "09:00", "09:00")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakePolicyRepo(), nopLogger{})
			req := validRequest(t)
			tt.mutate(t, req)

			_, err := svc.Upsert(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGet_ReturnsStoredPolicy(t *testing.T) {
	svc := NewService(newFakePolicyRepo(), nopLogger{})

	_, err := svc.Upsert(context.Background(), validRequest(t))
	require.NoError(t, err)

	resp, err := svc.Get(context.Background(), &models.GetPolicyRequest{
		ServiceID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxPerSlot)
	require.NotNil(t, resp.OperatingHours.Monday)
	assert.Equal(t, "09:00", resp.OperatingHours.Monday.Start.String())
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newFakePolicyRepo(), nopLogger{})

	_, err := svc.Get(context.Background(), &models.GetPolicyRequest{
		ServiceID: ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}
