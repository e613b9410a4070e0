package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик
type PolicyRepository interface {
	GetByScope(ctx context.Context, scope domain.Scope) (*domain.SlotPolicy, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByScopeAndDate(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.Slot, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) error
}

// SlotsCache интерфейс кеша наборов слотов на дату
type SlotsCache interface {
	Get(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.Slot, error)
	Set(ctx context.Context, scope domain.Scope, date time.Time, slots []*domain.Slot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
