package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-SlotService/internal/service/policy/models"
)

// Service сервис для работы с политиками слотов
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Upsert создает политику для scope или заменяет поля существующей
// Ранее сгенерированные слоты не затрагиваются: их max_capacity зафиксирован
// в момент генерации
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	scope, err := domain.NewScope(req.ServiceID, req.CampaignID)
	if err != nil {
		s.logger.Warn("Upsert: invalid scope: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("Upsert: upserting policy for scope=%s", scope)

	if err := s.validatePolicyData(req); err != nil {
		s.logger.Warn("Upsert: validation failed for scope=%s: %v", scope, err)
		return nil, err
	}

	p := &domain.SlotPolicy{
		Scope:                  scope,
		SlotSizeMinutes:        req.SlotSizeMinutes,
		MaxPerSlot:             req.MaxPerSlot,
		OperatingHours:         req.OperatingHours,
		BookingLeadTimeMinutes: req.BookingLeadTimeMinutes,
		CancelCutoffMinutes:    req.CancelCutoffMinutes,
	}

	stored, err := s.policyRepo.Upsert(ctx, p)
	if err != nil {
		s.logger.Error("Upsert: repository error for scope=%s: %v", scope, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: policy id=%d stored for scope=%s", stored.ID, scope)
	return models.FromDomainPolicy(stored), nil
}

// Get получает политику scope
func (s *Service) Get(ctx context.Context, req *models.GetPolicyRequest) (*models.PolicyResponse, error) {
	scope, err := domain.NewScope(req.ServiceID, req.CampaignID)
	if err != nil {
		s.logger.Warn("Get: invalid scope: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("Get: fetching policy for scope=%s", scope)

	p, err := s.policyRepo.GetByScope(ctx, scope)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Get: policy for scope=%s not found", scope)
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("Get: repository error for scope=%s: %v", scope, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(p), nil
}

// validatePolicyData проверяет бизнес-инварианты политики
func (s *Service) validatePolicyData(req *models.UpsertPolicyRequest) error {
	if req.SlotSizeMinutes < domain.MinSlotSizeMinutes || req.SlotSizeMinutes > domain.MaxSlotSizeMinutes {
		return fmt.Errorf("%w: slot_size must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotSizeMinutes, domain.MaxSlotSizeMinutes)
	}

	if req.MaxPerSlot < domain.MinPerSlot || req.MaxPerSlot > domain.MaxPerSlot {
		return fmt.Errorf("%w: max_per_slot must be between %d and %d",
			ErrInvalidInput, domain.MinPerSlot, domain.MaxPerSlot)
	}

	if req.BookingLeadTimeMinutes < domain.MinBookingLeadTimeMinutes || req.BookingLeadTimeMinutes > domain.MaxBookingLeadTimeMinutes {
		return fmt.Errorf("%w: booking_lead_time must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBookingLeadTimeMinutes, domain.MaxBookingLeadTimeMinutes)
	}

	if req.CancelCutoffMinutes < domain.MinCancelCutoffMinutes || req.CancelCutoffMinutes > domain.MaxCancelCutoffMinutes {
		return fmt.Errorf("%w: cancel_cutoff must be between %d and %d minutes",
			ErrInvalidInput, domain.MinCancelCutoffMinutes, domain.MaxCancelCutoffMinutes)
	}

	for day, hours := range req.OperatingHours.Days() {
		if !hours.IsValid() {
			return fmt.Errorf("%w: operating hours for %s: start %s must be before end %s",
				ErrInvalidInput, weekdayName(day), hours.Start, hours.End)
		}
	}

	return nil
}

func weekdayName(day time.Weekday) string {
	return map[time.Weekday]string{
		time.Monday:    "monday",
		time.Tuesday:   "tuesday",
		time.Wednesday: "wednesday",
		time.Thursday:  "thursday",
		time.Friday:    "friday",
		time.Saturday:  "saturday",
		time.Sunday:    "sunday",
	}[day]
}
