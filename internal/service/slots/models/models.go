package models

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotResponse ответ с данными одного слота
type SlotResponse struct {
	ID              int64
	ServiceID       *int64
	CampaignID      *int64
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	MaxCapacity     int
	CurrentBookings int
	AvailableSpots  int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FromDomainSlot конвертирует доменный слот в response-модель
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:              s.ID,
		ServiceID:       s.Scope.ServiceID(),
		CampaignID:      s.Scope.CampaignID(),
		Date:            s.SlotDate,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		MaxCapacity:     s.MaxCapacity,
		CurrentBookings: s.CurrentBookings,
		AvailableSpots:  s.AvailableSpots(),
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список доменных слотов
func FromDomainSlotList(slots []*domain.Slot) []*SlotResponse {
	result := make([]*SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = FromDomainSlot(s)
	}
	return result
}
