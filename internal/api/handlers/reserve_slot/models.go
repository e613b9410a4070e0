package reserve_slot

import (
	"time"

	reserveSlot "github.com/m04kA/SMC-SlotService/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	UserID int64 `json:"userId"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID              int64  `json:"id"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	CampaignID      *int64 `json:"campaignId,omitempty"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxCapacity     int    `json:"maxCapacity"`
	CurrentBookings int    `json:"currentBookings"`
	AvailableSpots  int    `json:"availableSpots"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		CampaignID:      resp.CampaignID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		MaxCapacity:     resp.MaxCapacity,
		CurrentBookings: resp.CurrentBookings,
		AvailableSpots:  resp.AvailableSpots,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
