package reserve_slot

import "time"

// Request модель запроса на бронирование одного места в слоте
// Одно место за вызов; многоместное бронирование не поддерживается
type Request struct {
	SlotID int64 // ID слота
	UserID int64 // ID пользователя (для логирования)
}

// Response модель ответа с обновленным слотом
type Response struct {
	ID              int64
	ServiceID       *int64
	CampaignID      *int64
	StartTime       time.Time
	EndTime         time.Time
	MaxCapacity     int
	CurrentBookings int
	AvailableSpots  int
	Status          string
	UpdatedAt       time.Time
}
