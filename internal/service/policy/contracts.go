package policy

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик слотов
type PolicyRepository interface {
	Upsert(ctx context.Context, p *domain.SlotPolicy) (*domain.SlotPolicy, error)
	GetByScope(ctx context.Context, scope domain.Scope) (*domain.SlotPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
