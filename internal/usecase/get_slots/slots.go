package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// generateSlots разворачивает недельную политику в слоты на конкретную дату
//
// Детерминированная чистая функция: одинаковые (policy, date) дают побитово
// одинаковую последовательность, поэтому генерацию можно безопасно повторять.
// День без рабочих часов дает пустую последовательность - это не ошибка.
//
// Слоты укладываются встык фиксированным шагом slot_size от начала рабочего
// дня; неполный хвостовой слот, выходящий за время закрытия, отбрасывается
// (известная потеря хвостовых минут при рассогласовании часов и размера слота,
// выравнивание - ответственность автора политики)
func generateSlots(policy *domain.SlotPolicy, date time.Time) ([]*domain.Slot, error) {
	hours := policy.OperatingHours.ForWeekday(date.Weekday())
	if hours == nil {
		return []*domain.Slot{}, nil
	}

	openMinutes, err := hours.Start.Minutes()
	if err != nil {
		return nil, err
	}

	closeMinutes, err := hours.End.Minutes()
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	slots := make([]*domain.Slot, 0)
	for cursor := openMinutes; cursor+policy.SlotSizeMinutes <= closeMinutes; cursor += policy.SlotSizeMinutes {
		startTime := dayStart.Add(time.Duration(cursor) * time.Minute)
		endTime := startTime.Add(time.Duration(policy.SlotSizeMinutes) * time.Minute)

		slots = append(slots, &domain.Slot{
			Scope:           policy.Scope,
			SlotDate:        dayStart,
			StartTime:       startTime,
			EndTime:         endTime,
			MaxCapacity:     policy.MaxPerSlot,
			CurrentBookings: 0,
			Status:          domain.StatusFromCount(0, policy.MaxPerSlot),
		})
	}

	return slots, nil
}
