package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Release(ctx context.Context, id int64) (*domain.Slot, error)
	Block(ctx context.Context, id int64) (*domain.Slot, error)
	Unblock(ctx context.Context, id int64) (*domain.Slot, error)
}

// PolicyRepository интерфейс репозитория политик
type PolicyRepository interface {
	GetByScope(ctx context.Context, scope domain.Scope) (*domain.SlotPolicy, error)
}

// SlotsCache интерфейс кеша наборов слотов (инвалидация после мутаций)
type SlotsCache interface {
	Invalidate(ctx context.Context, scope domain.Scope, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
