package models

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модели

// UpsertPolicyRequest запрос на создание или замену политики scope
// Ровно одно из ServiceID/CampaignID должно быть задано
type UpsertPolicyRequest struct {
	ServiceID  *int64
	CampaignID *int64

	SlotSizeMinutes        int
	MaxPerSlot             int
	OperatingHours         domain.WeekSchedule
	BookingLeadTimeMinutes int
	CancelCutoffMinutes    int
}

// GetPolicyRequest запрос на получение политики scope
type GetPolicyRequest struct {
	ServiceID  *int64
	CampaignID *int64
}

// Response модели

// PolicyResponse ответ с данными политики
type PolicyResponse struct {
	ID                     int64
	ServiceID              *int64
	CampaignID             *int64
	SlotSizeMinutes        int
	MaxPerSlot             int
	OperatingHours         domain.WeekSchedule
	BookingLeadTimeMinutes int
	CancelCutoffMinutes    int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// FromDomainPolicy конвертирует доменную политику в response-модель
func FromDomainPolicy(p *domain.SlotPolicy) *PolicyResponse {
	return &PolicyResponse{
		ID:                     p.ID,
		ServiceID:              p.Scope.ServiceID(),
		CampaignID:             p.Scope.CampaignID(),
		SlotSizeMinutes:        p.SlotSizeMinutes,
		MaxPerSlot:             p.MaxPerSlot,
		OperatingHours:         p.OperatingHours,
		BookingLeadTimeMinutes: p.BookingLeadTimeMinutes,
		CancelCutoffMinutes:    p.CancelCutoffMinutes,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}
