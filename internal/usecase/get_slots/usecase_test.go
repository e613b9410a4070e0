package get_slots

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakePolicyRepo struct {
	policies map[string]*domain.SlotPolicy
}

func (r *fakePolicyRepo) GetByScope(_ context.Context, scope domain.Scope) (*domain.SlotPolicy, error) {
	p, ok := r.policies[scope.String()]
	if !ok {
		return nil, policyRepo.ErrPolicyNotFound
	}
	return p, nil
}

// fakeSlotRepo in-memory хранилище с дедупликацией по (scope, start_time),
// как уникальный индекс в Postgres
type fakeSlotRepo struct {
	nextID      int64
	slots       map[string]*domain.Slot
	createCalls int
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{nextID: 1, slots: make(map[string]*domain.Slot)}
}

func slotKey(scope domain.Scope, start time.Time) string {
	return scope.String() + "|" + start.Format(time.RFC3339)
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) error {
	r.createCalls++
	for _, s := range slots {
		key := slotKey(s.Scope, s.StartTime)
		if _, exists := r.slots[key]; exists {
			continue
		}
		stored := *s
		stored.ID = r.nextID
		r.nextID++
		r.slots[key] = &stored
	}
	return nil
}

func (r *fakeSlotRepo) GetByScopeAndDate(_ context.Context, scope domain.Scope, date time.Time) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, s := range r.slots {
		if s.Scope == scope && s.SlotDate.Equal(date) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(t *testing.T, policies ...*domain.SlotPolicy) (*UseCase, *fakeSlotRepo) {
	t.Helper()

	pRepo := &fakePolicyRepo{policies: make(map[string]*domain.SlotPolicy)}
	for _, p := range policies {
		pRepo.policies[p.Scope.String()] = p
	}

	sRepo := newFakeSlotRepo()
	uc := NewUseCase(pRepo, sRepo, nil, fakeTxManager{}, nopLogger{})
	return uc, sRepo
}

func TestExecute_GeneratesSlotsOnFirstRequest(t *testing.T) {
	policy := testPolicy(t, 30, 2, domain.WeekSchedule{
		Monday: dayHours(t, "09:00", "10:00"),
	})
	uc, _ := newTestUseCase(t, policy)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: ptr.Ptr(int64(42)),
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	assert.Equal(t, "available", resp.Slots[0].Status)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
	assert.NotZero(t, resp.Slots[0].ID)
	assert.True(t, resp.Slots[0].StartTime.Before(resp.Slots[1].StartTime))
}

func TestExecute_SecondRequestDoesNotRegenerate(t *testing.T) {
	policy := testPolicy(t, 30, 2, domain.WeekSchedule{
		Monday: dayHours(t, "09:00", "10:00"),
	})
	uc, sRepo := newTestUseCase(t, policy)

	req := &Request{
		ServiceID: ptr.Ptr(int64(42)),
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, sRepo.createCalls)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Существующие слоты возвращаются как есть, генерация не повторяется
	assert.Equal(t, 1, sRepo.createCalls)
	require.Equal(t, len(first.Slots), len(second.Slots))
	for i := range first.Slots {
		assert.Equal(t, first.Slots[i].ID, second.Slots[i].ID)
	}
}

func TestExecute_ConcurrentGenerationDeduplicates(t *testing.T) {
	policy := testPolicy(t, 30, 2, domain.WeekSchedule{
		Monday: dayHours(t, "09:00", "12:00"),
	})
	uc, sRepo := newTestUseCase(t, policy)

	req := &Request{
		ServiceID: ptr.Ptr(int64(42)),
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	// Две генерации поверх одного хранилища: вторая пачка молча
	// пропускается на ключе (scope, start_time)
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	sameDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	generated, err := generateSlots(policy, sameDate)
	require.NoError(t, err)
	require.NoError(t, sRepo.CreateBatch(context.Background(), generated))

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, len(first.Slots), len(second.Slots))
}

func TestExecute_ClosedDayReturnsEmptyAndPersistsNothing(t *testing.T) {
	policy := testPolicy(t, 30, 2, domain.WeekSchedule{
		Monday: dayHours(t, "09:00", "18:00"),
	})
	uc, sRepo := newTestUseCase(t, policy)

	// Воскресенье: день без рабочих часов
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: ptr.Ptr(int64(42)),
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, sRepo.createCalls)
	assert.Empty(t, sRepo.slots)
}

func TestExecute_PolicyNotFound(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: ptr.Ptr(int64(99)),
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestExecute_InvalidScope(t *testing.T) {
	uc, _ := newTestUseCase(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ServiceID:  ptr.Ptr(int64(1)),
		CampaignID: ptr.Ptr(int64(2)),
		Date:       date,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ServiceID: ptr.Ptr(int64(1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
