package get_slots

import "time"

// Request модель запроса на получение слотов scope на дату
// Ровно одно из ServiceID/CampaignID должно быть задано
type Request struct {
	ServiceID  *int64    // ID услуги (взаимоисключающе с CampaignID)
	CampaignID *int64    // ID кампании (взаимоисключающе с ServiceID)
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со слотами на дату
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	ServiceID  *int64    // ID услуги (если scope сервисный)
	CampaignID *int64    // ID кампании (если scope кампанейский)
	Slots      []Slot    // Все слоты дня, по возрастанию времени начала
}

// Slot модель слота в ответе
// Набор не фильтруется по lead time: "доступно для брони прямо сейчас"
// вычисляется вызывающей стороной
type Slot struct {
	ID              int64
	StartTime       time.Time
	EndTime         time.Time
	MaxCapacity     int
	CurrentBookings int
	AvailableSpots  int
	Status          string
}
