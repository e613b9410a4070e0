package unblock_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	ID              int64  `json:"id"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	CampaignID      *int64 `json:"campaignId,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxCapacity     int    `json:"maxCapacity"`
	CurrentBookings int    `json:"currentBookings"`
	AvailableSpots  int    `json:"availableSpots"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotResponse) *SlotResponse {
	return &SlotResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		CampaignID:      resp.CampaignID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		MaxCapacity:     resp.MaxCapacity,
		CurrentBookings: resp.CurrentBookings,
		AvailableSpots:  resp.AvailableSpots,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
