package get_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
)

// UseCase use case получения слотов scope на дату с ленивой генерацией
type UseCase struct {
	policyRepo PolicyRepository
	slotRepo   SlotRepository
	cache      SlotsCache
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil, если кеширование выключено
func NewUseCase(
	policyRepo PolicyRepository,
	slotRepo SlotRepository,
	cache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		policyRepo: policyRepo,
		slotRepo:   slotRepo,
		cache:      cache,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute выполняет use case получения слотов
//
// Слоты на дату генерируются лениво при первом запросе и сохраняются целиком
// одной транзакцией. Если слоты уже существуют, возвращаются как есть -
// частичной регенерации и слияния нет, генерация выполняется один раз на дату.
// Набор не фильтруется по lead time
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	scope, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	date := normalizeDate(req.Date)

	uc.logger.Info("GetSlots: scope=%s, date=%s", scope, date.Format(domain.DateFormat))

	// 1. Загружаем политику scope
	policy, err := uc.policyRepo.GetByScope(ctx, scope)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Warn("GetSlots: policy for scope=%s not found", scope)
			return nil, ErrPolicyNotFound
		}
		uc.logger.Error("GetSlots: failed to get policy for scope=%s: %v", scope, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	// 2. Пробуем кеш
	if cached, ok := uc.cacheGet(ctx, scope, date); ok {
		uc.logger.Info("GetSlots: cache hit for scope=%s, date=%s, slots=%d",
			scope, date.Format(domain.DateFormat), len(cached))
		return uc.buildResponse(req, date, cached), nil
	}

	// 3. Читаем сохраненные слоты даты
	slots, err := uc.slotRepo.GetByScopeAndDate(ctx, scope, date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get slots for scope=%s: %v", scope, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 4. Если слотов нет - генерируем и сохраняем пачку как единое целое
	if len(slots) == 0 {
		slots, err = uc.generateAndPersist(ctx, policy, scope, date)
		if err != nil {
			return nil, err
		}
	}

	uc.cacheSet(ctx, scope, date, slots)

	uc.logger.Info("GetSlots: returning %d slots for scope=%s, date=%s",
		len(slots), scope, date.Format(domain.DateFormat))
	return uc.buildResponse(req, date, slots), nil
}

// generateAndPersist генерирует слоты даты и сохраняет их одной транзакцией
//
// Гонка двух одновременных генераций разрешается на уникальном ключе
// (scope_type, scope_id, start_time): проигравшие INSERT молча пропускаются,
// и оба вызова возвращают один и тот же дедуплицированный набор из повторного
// чтения внутри транзакции
func (uc *UseCase) generateAndPersist(ctx context.Context, policy *domain.SlotPolicy, scope domain.Scope, date time.Time) ([]*domain.Slot, error) {
	generated, err := generateSlots(policy, date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to generate slots for scope=%s: %v", scope, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// Закрытый день: пусто и нечего сохранять
	if len(generated) == 0 {
		uc.logger.Info("GetSlots: scope=%s is closed on %s", scope, date.Format(domain.DateFormat))
		return generated, nil
	}

	var persisted []*domain.Slot
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.slotRepo.CreateBatch(txCtx, generated); err != nil {
			return fmt.Errorf("%w: failed to persist generated slots: %v", ErrInternal, err)
		}

		stored, err := uc.slotRepo.GetByScopeAndDate(txCtx, scope, date)
		if err != nil {
			return fmt.Errorf("%w: failed to re-read generated slots: %v", ErrInternal, err)
		}

		persisted = stored
		return nil
	})

	if err != nil {
		uc.logger.Error("GetSlots: generation transaction failed for scope=%s: %v", scope, err)
		return nil, err
	}

	uc.logger.Info("GetSlots: generated %d slots for scope=%s, date=%s",
		len(persisted), scope, date.Format(domain.DateFormat))
	return persisted, nil
}

// cacheGet читает набор слотов из кеша; любая ошибка кеша трактуется как промах
func (uc *UseCase) cacheGet(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.Slot, bool) {
	if uc.cache == nil {
		return nil, false
	}

	cached, err := uc.cache.Get(ctx, scope, date)
	if err != nil {
		return nil, false
	}
	return cached, true
}

// cacheSet сохраняет набор слотов в кеш; ошибка кеша не фатальна
func (uc *UseCase) cacheSet(ctx context.Context, scope domain.Scope, date time.Time, slots []*domain.Slot) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Set(ctx, scope, date, slots); err != nil {
		uc.logger.Warn("GetSlots: failed to cache slots for scope=%s, date=%s: %v",
			scope, date.Format(domain.DateFormat), err)
	}
}

func (uc *UseCase) buildResponse(req *Request, date time.Time, slots []*domain.Slot) *Response {
	views := make([]Slot, len(slots))
	for i, s := range slots {
		views[i] = Slot{
			ID:              s.ID,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			MaxCapacity:     s.MaxCapacity,
			CurrentBookings: s.CurrentBookings,
			AvailableSpots:  s.AvailableSpots(),
			Status:          string(s.Status),
		}
	}

	return &Response{
		Date:       date,
		ServiceID:  req.ServiceID,
		CampaignID: req.CampaignID,
		Slots:      views,
	}
}

// normalizeDate обнуляет время, оставляя только дату
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
