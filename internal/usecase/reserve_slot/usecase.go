package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
)

// UseCase use case бронирования одного места в слоте
type UseCase struct {
	slotRepo     SlotRepository
	policyRepo   PolicyRepository
	cache        SlotsCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil, если кеширование выключено
func NewUseCase(
	slotRepo SlotRepository,
	policyRepo PolicyRepository,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		policyRepo:   policyRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case бронирования
//
// Проверка lead time выполняется здесь, на уровне, владеющем политикой.
// Сама вместимость проверяется исключительно атомарным Reserve хранилища:
// при гонке за последнее место выигрывает ровно один вызов, проигравший
// получает ErrSlotFull без какой-либо мутации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: user=%d, slot=%d", req.UserID, req.SlotID)

	// 1. Валидация входных данных
	if req.SlotID <= 0 {
		uc.logger.Warn("ReserveSlot: invalid slot id=%d", req.SlotID)
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	// 2. Читаем слот (для lead time нужно время начала)
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("ReserveSlot: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 3. Ранний отказ по блокировке; авторитетная проверка - в атомарном Reserve
	if slot.IsBlocked() {
		uc.logger.Warn("ReserveSlot: slot id=%d is blocked", req.SlotID)
		return nil, ErrSlotBlocked
	}

	// 4. Проверяем lead time по политике scope
	leadTime := uc.leadTimeFor(ctx, slot)
	now := uc.timeProvider.Now()
	if !now.Before(slot.StartTime.Add(-leadTime)) {
		uc.logger.Warn("ReserveSlot: lead time passed for slot id=%d (start=%s, lead=%s)",
			req.SlotID, slot.StartTime.Format(time.RFC3339), leadTime)
		return nil, ErrTooLateToReserve
	}

	// 5. Атомарный test-and-increment в хранилище
	reserved, err := uc.slotRepo.Reserve(ctx, req.SlotID)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			uc.logger.Warn("ReserveSlot: slot id=%d disappeared", req.SlotID)
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotBlocked):
			uc.logger.Warn("ReserveSlot: slot id=%d blocked concurrently", req.SlotID)
			return nil, ErrSlotBlocked
		case errors.Is(err, slotRepo.ErrSlotFull):
			uc.logger.Warn("ReserveSlot: slot id=%d is full", req.SlotID)
			return nil, ErrSlotFull
		default:
			uc.logger.Error("ReserveSlot: failed to reserve slot id=%d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}
	}

	uc.invalidateCache(ctx, reserved)

	uc.logger.Info("ReserveSlot: user=%d reserved slot id=%d, now %d/%d, status=%s",
		req.UserID, reserved.ID, reserved.CurrentBookings, reserved.MaxCapacity, reserved.Status)

	return &Response{
		ID:              reserved.ID,
		ServiceID:       reserved.Scope.ServiceID(),
		CampaignID:      reserved.Scope.CampaignID(),
		StartTime:       reserved.StartTime,
		EndTime:         reserved.EndTime,
		MaxCapacity:     reserved.MaxCapacity,
		CurrentBookings: reserved.CurrentBookings,
		AvailableSpots:  reserved.AvailableSpots(),
		Status:          string(reserved.Status),
		UpdatedAt:       reserved.UpdatedAt,
	}, nil
}

// leadTimeFor возвращает booking_lead_time политики слота
// При отсутствии политики используются дефолтные значения - слот остается
// валидной исторической записью даже без политики
func (uc *UseCase) leadTimeFor(ctx context.Context, slot *domain.Slot) time.Duration {
	p, err := uc.policyRepo.GetByScope(ctx, slot.Scope)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("ReserveSlot: failed to get policy for scope=%s: %v", slot.Scope, err)
		}
		uc.logger.Info("ReserveSlot: using default lead time for scope=%s", slot.Scope)
		return time.Duration(domain.DefaultBookingLeadTimeMinutes) * time.Minute
	}
	return p.LeadTime()
}

// invalidateCache сбрасывает кеш набора слотов дня; ошибка кеша не фатальна
func (uc *UseCase) invalidateCache(ctx context.Context, slot *domain.Slot) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, slot.Scope, slot.SlotDate); err != nil {
		uc.logger.Warn("ReserveSlot: failed to invalidate cache for scope=%s, date=%s: %v",
			slot.Scope, slot.SlotDate.Format(domain.DateFormat), err)
	}
}
