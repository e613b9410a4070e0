package get_policy

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/policy/models"
)

// PolicyResponse HTTP response model
type PolicyResponse struct {
	ID                     int64               `json:"id"`
	ServiceID              *int64              `json:"serviceId,omitempty"`
	CampaignID             *int64              `json:"campaignId,omitempty"`
	SlotSizeMinutes        int                 `json:"slotSizeMinutes"`
	MaxPerSlot             int                 `json:"maxPerSlot"`
	OperatingHours         domain.WeekSchedule `json:"operatingHours"`
	BookingLeadTimeMinutes int                 `json:"bookingLeadTimeMinutes"`
	CancelCutoffMinutes    int                 `json:"cancelCutoffMinutes"`
	CreatedAt              string              `json:"createdAt"`
	UpdatedAt              string              `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.PolicyResponse) *PolicyResponse {
	return &PolicyResponse{
		ID:                     resp.ID,
		ServiceID:              resp.ServiceID,
		CampaignID:             resp.CampaignID,
		SlotSizeMinutes:        resp.SlotSizeMinutes,
		MaxPerSlot:             resp.MaxPerSlot,
		OperatingHours:         resp.OperatingHours,
		BookingLeadTimeMinutes: resp.BookingLeadTimeMinutes,
		CancelCutoffMinutes:    resp.CancelCutoffMinutes,
		CreatedAt:              resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              resp.UpdatedAt.Format(time.RFC3339),
	}
}
