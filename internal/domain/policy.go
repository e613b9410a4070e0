package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// DayHours рабочие часы одного дня недели
type DayHours struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// IsValid returns true if the pair describes a non-empty interval
func (h DayHours) IsValid() bool {
	return h.Start.IsBefore(h.End)
}

// WeekSchedule недельное расписание работы
// nil для дня недели означает "закрыто" - явный optional вместо отсутствия ключа
type WeekSchedule struct {
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty"`
}

// ForWeekday возвращает рабочие часы для дня недели (nil = закрыто)
func (w *WeekSchedule) ForWeekday(day time.Weekday) *DayHours {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return nil
	}
}

// Days возвращает пары (день, часы) для всех открытых дней
func (w *WeekSchedule) Days() map[time.Weekday]*DayHours {
	result := make(map[time.Weekday]*DayHours)
	for _, day := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		if hours := w.ForWeekday(day); hours != nil {
			result[day] = hours
		}
	}
	return result
}

// SlotPolicy недельный шаблон, из которого генерируются конкретные слоты
type SlotPolicy struct {
	ID                     int64
	Scope                  Scope
	SlotSizeMinutes        int
	MaxPerSlot             int
	OperatingHours         WeekSchedule
	BookingLeadTimeMinutes int // Минимальный запас времени до начала слота для бронирования
	CancelCutoffMinutes    int // После start - cutoff бронь отменить уже нельзя

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenOn returns true if the policy has operating hours for the weekday
func (p *SlotPolicy) IsOpenOn(day time.Weekday) bool {
	return p.OperatingHours.ForWeekday(day) != nil
}

// LeadTime возвращает booking_lead_time как time.Duration
func (p *SlotPolicy) LeadTime() time.Duration {
	return time.Duration(p.BookingLeadTimeMinutes) * time.Minute
}

// CancelCutoff возвращает cancel_cutoff как time.Duration
func (p *SlotPolicy) CancelCutoff() time.Duration {
	return time.Duration(p.CancelCutoffMinutes) * time.Minute
}
