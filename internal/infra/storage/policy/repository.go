package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с политиками слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает политику для scope или заменяет поля существующей
// Одним запросом через ON CONFLICT по уникальному ключу (scope_type, scope_id);
// ранее сгенерированные слоты этим запросом не затрагиваются
func (r *Repository) Upsert(ctx context.Context, p *domain.SlotPolicy) (*domain.SlotPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := json.Marshal(p.OperatingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal operating hours: %v", ErrEncodeHours, err)
	}

	query, args, err := psqlbuilder.Insert("slot_policies").
		Columns(
			"scope_type",
			"scope_id",
			"slot_size_minutes",
			"max_per_slot",
			"operating_hours",
			"booking_lead_time_minutes",
			"cancel_cutoff_minutes",
		).
		Values(
			p.Scope.Type,
			p.Scope.ID,
			p.SlotSizeMinutes,
			p.MaxPerSlot,
			hours,
			p.BookingLeadTimeMinutes,
			p.CancelCutoffMinutes,
		).
		Suffix(`ON CONFLICT (scope_type, scope_id) DO UPDATE SET
			slot_size_minutes = EXCLUDED.slot_size_minutes,
			max_per_slot = EXCLUDED.max_per_slot,
			operating_hours = EXCLUDED.operating_hours,
			booking_lead_time_minutes = EXCLUDED.booking_lead_time_minutes,
			cancel_cutoff_minutes = EXCLUDED.cancel_cutoff_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByScope получает политику по scope
func (r *Repository) GetByScope(ctx context.Context, scope domain.Scope) (*domain.SlotPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"scope_type",
		"scope_id",
		"slot_size_minutes",
		"max_per_slot",
		"operating_hours",
		"booking_lead_time_minutes",
		"cancel_cutoff_minutes",
		"created_at",
		"updated_at",
	).
		From("slot_policies").
		Where(squirrel.Eq{"scope_type": scope.Type, "scope_id": scope.ID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByScope - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPolicy(executor.QueryRowContext(ctx, query, args...), "GetByScope")
}

// GetByID получает политику по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"scope_type",
		"scope_id",
		"slot_size_minutes",
		"max_per_slot",
		"operating_hours",
		"booking_lead_time_minutes",
		"cancel_cutoff_minutes",
		"created_at",
		"updated_at",
	).
		From("slot_policies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPolicy(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// scanPolicy сканирует одну строку политики
func (r *Repository) scanPolicy(row *sql.Row, method string) (*domain.SlotPolicy, error) {
	var p domain.SlotPolicy
	var hours []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.Scope.Type,
		&p.Scope.ID,
		&p.SlotSizeMinutes,
		&p.MaxPerSlot,
		&hours,
		&p.BookingLeadTimeMinutes,
		&p.CancelCutoffMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan policy: %v", ErrScanRow, method, err)
	}

	if err := json.Unmarshal(hours, &p.OperatingHours); err != nil {
		return nil, fmt.Errorf("%w: %s - unmarshal operating hours: %v", ErrDecodeHours, method, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
