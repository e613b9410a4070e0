package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
)

// Service сервис для работы с отдельными слотами:
// чтение, освобождение места и административная блокировка
type Service struct {
	slotRepo     SlotRepository
	policyRepo   PolicyRepository
	cache        SlotsCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
// cache может быть nil, если кеширование выключено
func NewService(
	slotRepo SlotRepository,
	policyRepo PolicyRepository,
	cache SlotsCache,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		policyRepo:   policyRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainSlot(slot), nil
}

// Release атомарно освобождает одно место в слоте
// Отмена после cancel_cutoff политики запрещена; декремент нулевого счетчика
// и освобождение заблокированного слота отклоняются хранилищем
func (s *Service) Release(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("Release: releasing one unit for slot id=%d", id)

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Release", id, err)
	}

	cutoff := s.cancelCutoffFor(ctx, slot)
	now := s.timeProvider.Now()
	if !now.Before(slot.StartTime.Add(-cutoff)) {
		s.logger.Warn("Release: cancel cutoff passed for slot id=%d (start=%s, cutoff=%s)",
			id, slot.StartTime.Format("2006-01-02 15:04"), cutoff)
		return nil, ErrTooLateToCancel
	}

	released, err := s.slotRepo.Release(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Release", id, err)
	}

	s.invalidateCache(ctx, released)

	s.logger.Info("Release: slot id=%d now %d/%d, status=%s",
		id, released.CurrentBookings, released.MaxCapacity, released.Status)
	return models.FromDomainSlot(released), nil
}

// Block ставит административную блокировку на слот
// Заблокированный слот не принимает бронирования независимо от счетчика
// и не разблокируется трафиком бронирований
func (s *Service) Block(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("Block: blocking slot id=%d", id)

	blocked, err := s.slotRepo.Block(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Block", id, err)
	}

	s.invalidateCache(ctx, blocked)

	s.logger.Info("Block: slot id=%d blocked", id)
	return models.FromDomainSlot(blocked), nil
}

// Unblock снимает административную блокировку
// Статус пересчитывается из счетчика бронирований
func (s *Service) Unblock(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("Unblock: unblocking slot id=%d", id)

	unblocked, err := s.slotRepo.Unblock(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Unblock", id, err)
	}

	s.invalidateCache(ctx, unblocked)

	s.logger.Info("Unblock: slot id=%d now status=%s (%d/%d)",
		id, unblocked.Status, unblocked.CurrentBookings, unblocked.MaxCapacity)
	return models.FromDomainSlot(unblocked), nil
}

// cancelCutoffFor возвращает cancel_cutoff политики слота
// Если политика scope удалена, слот остается валидной исторической записью
// и используются дефолтные значения
func (s *Service) cancelCutoffFor(ctx context.Context, slot *domain.Slot) time.Duration {
	p, err := s.policyRepo.GetByScope(ctx, slot.Scope)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Error("cancelCutoffFor: failed to get policy for scope=%s: %v", slot.Scope, err)
		}
		s.logger.Info("cancelCutoffFor: using default cutoff for scope=%s", slot.Scope)
		return time.Duration(domain.DefaultCancelCutoffMinutes) * time.Minute
	}
	return p.CancelCutoff()
}

// invalidateCache сбрасывает кеш набора слотов дня после мутации
// Ошибка кеша не фатальна: источником истины остается БД
func (s *Service) invalidateCache(ctx context.Context, slot *domain.Slot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slot.Scope, slot.SlotDate); err != nil {
		s.logger.Warn("invalidateCache: failed for scope=%s date=%s: %v",
			slot.Scope, slot.SlotDate.Format(domain.DateFormat), err)
	}
}

// mapRepoError транслирует ошибки репозитория в ошибки сервиса
func (s *Service) mapRepoError(method string, id int64, err error) error {
	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.logger.Warn("%s: slot id=%d not found", method, id)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotBlocked):
		s.logger.Warn("%s: slot id=%d is blocked", method, id)
		return ErrSlotBlocked
	case errors.Is(err, slotRepo.ErrSlotNotBlocked):
		s.logger.Warn("%s: slot id=%d is not blocked", method, id)
		return ErrSlotNotBlocked
	case errors.Is(err, slotRepo.ErrNothingToRelease):
		s.logger.Warn("%s: slot id=%d has no bookings to release", method, id)
		return ErrNothingToRelease
	default:
		s.logger.Error("%s: repository error for slot id=%d: %v", method, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
}
