package domain

import "time"

// SlotStatus represents the lifecycle state of a slot
type SlotStatus string

const (
	// SlotAvailable слот принимает бронирования (current_bookings < max_capacity)
	SlotAvailable SlotStatus = "available"
	// SlotBooked все места заняты (current_bookings == max_capacity)
	SlotBooked SlotStatus = "booked"
	// SlotBlocked административная блокировка; бронирования не принимаются
	// независимо от счетчика и не снимается трафиком бронирований
	SlotBlocked SlotStatus = "blocked"
)

// Slot one concrete, dated, capacity-bounded bookable time window
// Форма слота (start, end, max_capacity) фиксируется при генерации;
// изменяемы только current_bookings и status
type Slot struct {
	ID       int64
	Scope    Scope
	SlotDate time.Time // Дата слота (без времени), для выборок по дню

	StartTime time.Time
	EndTime   time.Time

	MaxCapacity     int // Копия max_per_slot политики на момент генерации
	CurrentBookings int
	Status          SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull returns true if all capacity units are taken
func (s *Slot) IsFull() bool {
	return s.CurrentBookings >= s.MaxCapacity
}

// IsBlocked returns true if the slot is administratively held
func (s *Slot) IsBlocked() bool {
	return s.Status == SlotBlocked
}

// AvailableSpots returns the number of free capacity units
func (s *Slot) AvailableSpots() int {
	free := s.MaxCapacity - s.CurrentBookings
	if free < 0 {
		return 0
	}
	return free
}

// StatusFromCount возвращает статус, соответствующий счетчику бронирований
// Используется при генерации и при снятии административной блокировки
func StatusFromCount(currentBookings, maxCapacity int) SlotStatus {
	if currentBookings >= maxCapacity {
		return SlotBooked
	}
	return SlotAvailable
}
