package domain

import (
	"errors"
	"fmt"
)

// ScopeType тип владельца политики/слотов
type ScopeType string

const (
	ScopeService  ScopeType = "service"
	ScopeCampaign ScopeType = "campaign"
)

var (
	// ErrScopeMissing возвращается, когда не указан ни service_id, ни campaign_id
	ErrScopeMissing = errors.New("scope requires either service_id or campaign_id")

	// ErrScopeAmbiguous возвращается, когда указаны и service_id, и campaign_id
	ErrScopeAmbiguous = errors.New("scope cannot reference both service and campaign")
)

// Scope владелец политики и слотов: услуга ИЛИ кампания (ровно одно из двух)
// Явная tagged-пара вместо двух взаимоисключающих nullable-ссылок
type Scope struct {
	Type ScopeType
	ID   int64
}

// NewScope строит Scope из пары опциональных ссылок
// Ровно одна из ссылок должна быть задана
func NewScope(serviceID, campaignID *int64) (Scope, error) {
	switch {
	case serviceID != nil && campaignID != nil:
		return Scope{}, ErrScopeAmbiguous
	case serviceID != nil:
		return Scope{Type: ScopeService, ID: *serviceID}, nil
	case campaignID != nil:
		return Scope{Type: ScopeCampaign, ID: *campaignID}, nil
	default:
		return Scope{}, ErrScopeMissing
	}
}

// ServiceID возвращает ссылку на услугу, если scope сервисный
func (s Scope) ServiceID() *int64 {
	if s.Type == ScopeService {
		id := s.ID
		return &id
	}
	return nil
}

// CampaignID возвращает ссылку на кампанию, если scope кампанейский
func (s Scope) CampaignID() *int64 {
	if s.Type == ScopeCampaign {
		id := s.ID
		return &id
	}
	return nil
}

// String возвращает представление вида "service:42" (используется в логах и ключах кеша)
func (s Scope) String() string {
	return fmt.Sprintf("%s:%d", s.Type, s.ID)
}
