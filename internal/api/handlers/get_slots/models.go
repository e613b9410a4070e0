package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	getSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_slots"
)

// SlotResponse HTTP model одного слота
type SlotResponse struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxCapacity     int    `json:"maxCapacity"`
	CurrentBookings int    `json:"currentBookings"`
	AvailableSpots  int    `json:"availableSpots"`
	Status          string `json:"status"`
}

// GetSlotsResponse HTTP response model
type GetSlotsResponse struct {
	Date       string         `json:"date"`
	ServiceID  *int64         `json:"serviceId,omitempty"`
	CampaignID *int64         `json:"campaignId,omitempty"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *GetSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			ID:              s.ID,
			StartTime:       s.StartTime.Format(time.RFC3339),
			EndTime:         s.EndTime.Format(time.RFC3339),
			MaxCapacity:     s.MaxCapacity,
			CurrentBookings: s.CurrentBookings,
			AvailableSpots:  s.AvailableSpots,
			Status:          s.Status,
		}
	}
	return &GetSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		ServiceID:  resp.ServiceID,
		CampaignID: resp.CampaignID,
		Slots:      slots,
	}
}
