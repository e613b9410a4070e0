package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

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

// fakeSlotRepo повторяет guard-семантику условных UPDATE хранилища
type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[int64]*domain.Slot)}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if s.Status == domain.SlotBlocked {
		return nil, slotRepo.ErrSlotBlocked
	}
	if s.CurrentBookings <= 0 {
		return nil, slotRepo.ErrNothingToRelease
	}

	s.CurrentBookings--
	s.Status = domain.SlotAvailable
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) Block(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if s.Status == domain.SlotBlocked {
		return nil, slotRepo.ErrSlotBlocked
	}

	s.Status = domain.SlotBlocked
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) Unblock(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if s.Status != domain.SlotBlocked {
		return nil, slotRepo.ErrSlotNotBlocked
	}

	s.Status = domain.StatusFromCount(s.CurrentBookings, s.MaxCapacity)
	copied := *s
	return &copied, nil
}

type recordingCache struct {
	invalidations int
}

func (c *recordingCache) Invalidate(_ context.Context, _ domain.Scope, _ time.Time) error {
	c.invalidations++
	return nil
}

func testSlot(id int64, capacity, bookings int, status domain.SlotStatus, start time.Time) *domain.Slot {
	return &domain.Slot{
		ID:              id,
		Scope:           domain.Scope{Type: domain.ScopeService, ID: 42},
		SlotDate:        time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		MaxCapacity:     capacity,
		CurrentBookings: bookings,
		Status:          status,
	}
}

func newTestService(repo *fakeSlotRepo, cache SlotsCache, now time.Time) *Service {
	return NewService(repo, &fakePolicyRepo{}, cache, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
}

func TestRelease_DecrementsAndReopens(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 2, 2, domain.SlotBooked, start))
	cache := &recordingCache{}
	svc := newTestService(repo, cache, start.Add(-3*time.Hour))

	resp, err := svc.Release(context.Background(), 1)
	require.NoError(t, err)

	// Освобождение места переоткрывает полный слот
	assert.Equal(t, 1, resp.CurrentBookings)
	assert.Equal(t, "available", resp.Status)
	assert.Equal(t, 1, cache.invalidations)
}

func TestRelease_NothingToRelease(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 2, 0, domain.SlotAvailable, start))
	svc := newTestService(repo, nil, start.Add(-3*time.Hour))

	_, err := svc.Release(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNothingToRelease)
}

func TestRelease_BlockedSlot(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 2, 1, domain.SlotBlocked, start))
	svc := newTestService(repo, nil, start.Add(-3*time.Hour))

	_, err := svc.Release(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestRelease_TooLateToCancel(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 2, 1, domain.SlotAvailable, start))

	// Дефолтный cutoff 60 минут: за 30 минут до начала отменять поздно
	svc := newTestService(repo, nil, start.Add(-30*time.Minute))
	_, err := svc.Release(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTooLateToCancel)

	// За 2 часа - можно
	svc = newTestService(repo, nil, start.Add(-2*time.Hour))
	_, err = svc.Release(context.Background(), 1)
	assert.NoError(t, err)
}

func TestRelease_NotFound(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), nil, time.Now())

	_, err := svc.Release(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBlock_BlocksSlotRegardlessOfBookings(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 3, 2, domain.SlotAvailable, start))
	cache := &recordingCache{}
	svc := newTestService(repo, cache, start.Add(-3*time.Hour))

	resp, err := svc.Block(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "blocked", resp.Status)
	assert.Equal(t, 2, resp.CurrentBookings)
	assert.Equal(t, 1, cache.invalidations)
}

func TestBlock_AlreadyBlocked(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 3, 0, domain.SlotBlocked, start))
	svc := newTestService(repo, nil, start.Add(-3*time.Hour))

	_, err := svc.Block(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestUnblock_RecomputesStatusFromCount(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	// Частично занятый -> available
	repo := newFakeSlotRepo(testSlot(1, 3, 1, domain.SlotBlocked, start))
	svc := newTestService(repo, nil, start.Add(-3*time.Hour))

	resp, err := svc.Unblock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "available", resp.Status)

	// Полный -> booked
	repo = newFakeSlotRepo(testSlot(2, 2, 2, domain.SlotBlocked, start))
	svc = newTestService(repo, nil, start.Add(-3*time.Hour))

	resp, err = svc.Unblock(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "booked", resp.Status)
}

func TestUnblock_NotBlocked(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 3, 0, domain.SlotAvailable, start))
	svc := newTestService(repo, nil, start.Add(-3*time.Hour))

	_, err := svc.Unblock(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSlotNotBlocked)
}

func TestGetByID(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo(testSlot(1, 3, 1, domain.SlotAvailable, start))
	svc := newTestService(repo, nil, start)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 2, resp.AvailableSpots)
	require.NotNil(t, resp.ServiceID)
	assert.Equal(t, int64(42), *resp.ServiceID)
}
