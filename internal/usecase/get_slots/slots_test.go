package get_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

func dayHours(t *testing.T, start, end string) *domain.DayHours {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return &domain.DayHours{Start: s, End: e}
}

func testPolicy(t *testing.T, slotSize, maxPerSlot int, hours domain.WeekSchedule) *domain.SlotPolicy {
	t.Helper()
	return &domain.SlotPolicy{
		ID:              1,
		Scope:           domain.Scope{Type: domain.ScopeService, ID: 42},
		SlotSizeMinutes: slotSize,
		MaxPerSlot:      maxPerSlot,
		OperatingHours:  hours,
	}
}

func TestGenerateSlots_TilesOperatingHours(t *testing.T) {
	// Понедельник 2026-03-02, часы 09:00-10:00, слот 30 минут -> 2 слота
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	policy := testPolicy(t, 30, 3, domain.WeekSchedule{
		Monday: dayHours(t, "09:00", "10:00"),
	})

	slots, err := generateSlots(policy, date)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, date.Add(9*time.Hour), slots[0].StartTime)
	assert.Equal(t, date.Add(9*time.Hour+30*time.Minute), slots[0].EndTime)
	assert.Equal(t, date.Add(9*time.Hour+30*time.Minute), slots[1].StartTime)
	assert.Equal(t, date.Add(10*time.Hour), slots[1].EndTime)

	for _, s := range slots {
		assert.Equal(t, policy.Scope, s.Scope)
		assert.Equal(t, 3, s.MaxCapacity)
		assert.Equal(t, 0, s.CurrentBookings)
		assert.Equal(t, domain.SlotAvailable, s.Status)
		assert.Equal(t, date, s.SlotDate)
	}
}

func TestGenerateSlots_DropsPartialTrailingSlot(t *testing.T) {
	// 09:00-09:50 при слоте 30 минут: второй слот не помещается целиком
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	policy := testPolicy(t, 30, 1, domain.WeekSchedule{
		Monday: dayHours(t, "09:00", "09:50"),
	})

	slots, err := generateSlots(policy, date)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, date.Add(9*time.Hour), slots[0].StartTime)
	assert.Equal(t, date.Add(9*time.Hour+30*time.Minute), slots[0].EndTime)
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	// Политика открыта только в понедельник, запрашиваем воскресенье
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, date.Weekday())

	policy := testPolicy(t, 30, 1, domain.WeekSchedule{
		Monday: dayHours(t, "09:00", "18:00"),
	})

	slots, err := generateSlots(policy, date)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	policy := testPolicy(t, 45, 2, domain.WeekSchedule{
		Wednesday: dayHours(t, "08:30", "20:00"),
	})

	first, err := generateSlots(policy, date)
	require.NoError(t, err)
	second, err := generateSlots(policy, date)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].StartTime, second[i].StartTime)
		assert.Equal(t, first[i].EndTime, second[i].EndTime)
		assert.Equal(t, first[i].MaxCapacity, second[i].MaxCapacity)
	}
}

func TestGenerateSlots_FullDayTiling(t *testing.T) {
	// 09:00-17:00 при слоте 60 минут -> ровно 8 слотов встык без пересечений
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	policy := testPolicy(t, 60, 1, domain.WeekSchedule{
		Tuesday: dayHours(t, "09:00", "17:00"),
	})

	slots, err := generateSlots(policy, date)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
	}
}
