package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// slotColumns полный список колонок таблицы slots в порядке сканирования
var slotColumns = []string{
	"id",
	"scope_type",
	"scope_id",
	"slot_date",
	"start_time",
	"end_time",
	"max_capacity",
	"current_bookings",
	"status",
	"created_at",
	"updated_at",
}

// returningClause RETURNING со всеми колонками слота
const returningClause = "RETURNING id, scope_type, scope_id, slot_date, start_time, end_time, " +
	"max_capacity, current_bookings, status, created_at, updated_at"

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет пачку сгенерированных слотов одним INSERT
// Повторная генерация той же даты дедуплицируется уникальным ключом
// (scope_type, scope_id, start_time): конфликтующие строки молча пропускаются,
// поэтому гонка двух одновременных генераций не приводит ни к ошибке, ни к дублям
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns(
			"scope_type",
			"scope_id",
			"slot_date",
			"start_time",
			"end_time",
			"max_capacity",
			"current_bookings",
			"status",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.Scope.Type,
			s.Scope.ID,
			s.SlotDate,
			s.StartTime,
			s.EndTime,
			s.MaxCapacity,
			s.CurrentBookings,
			s.Status,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (scope_type, scope_id, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByScopeAndDate получает все слоты scope на дату, упорядоченные по времени начала
func (r *Repository) GetByScopeAndDate(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{
			"scope_type": scope.Type,
			"scope_id":   scope.ID,
			"slot_date":  date,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByScopeAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByScopeAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// Reserve атомарно занимает одно место в слоте
//
// Проверка вместимости и инкремент счетчика выполняются одним условным UPDATE:
// строка обновляется только если слот не заблокирован и есть свободное место.
// Для последнего места из двух гонящихся вызовов UPDATE пройдет ровно у одного -
// PostgreSQL сериализует обновления строки, наивного read-modify-write здесь нет.
//
// Если строка не обновилась, причина классифицируется повторным чтением:
// ErrSlotNotFound, ErrSlotBlocked либо ErrSlotFull
func (r *Repository) Reserve(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("status", squirrel.Expr(
			"CASE WHEN current_bookings + 1 >= max_capacity THEN ? ELSE ? END",
			domain.SlotBooked, domain.SlotAvailable,
		)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.SlotBlocked}).
		Where(squirrel.Expr("current_bookings < max_capacity")).
		Suffix(returningClause).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, r.classifyReserveConflict(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// Release атомарно освобождает одно место в слоте
// Декремент выполняется только при current_bookings > 0 и отсутствии блокировки;
// статус booked понижается до available тем же UPDATE
func (r *Repository) Release(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings - 1")).
		Set("status", squirrel.Expr("?", domain.SlotAvailable)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.SlotBlocked}).
		Where(squirrel.Expr("current_bookings > 0")).
		Suffix(returningClause).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, r.classifyReleaseConflict(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Release - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// Block ставит административную блокировку на слот
// Счетчик бронирований при этом не меняется
func (r *Repository) Block(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", squirrel.Expr("?", domain.SlotBlocked)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.SlotBlocked}).
		Suffix(returningClause).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Block - build update query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Строка не обновилась: слота нет либо он уже заблокирован
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if existing.Status == domain.SlotBlocked {
			return nil, ErrSlotBlocked
		}
		return nil, fmt.Errorf("%w: Block - no rows updated for slot id=%d", ErrExecQuery, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Block - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// Unblock снимает административную блокировку
// Статус восстанавливается из счетчика: booked при полном слоте, иначе available
func (r *Repository) Unblock(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", squirrel.Expr(
			"CASE WHEN current_bookings >= max_capacity THEN ? ELSE ? END",
			domain.SlotBooked, domain.SlotAvailable,
		)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.SlotBlocked}).
		Suffix(returningClause).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Unblock - build update query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Строка не обновилась: слота нет либо он не был заблокирован
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if existing.Status != domain.SlotBlocked {
			return nil, ErrSlotNotBlocked
		}
		return nil, fmt.Errorf("%w: Unblock - no rows updated for slot id=%d", ErrExecQuery, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Unblock - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// classifyReserveConflict определяет причину несработавшего Reserve
func (r *Repository) classifyReserveConflict(ctx context.Context, id int64) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("%w: Reserve - classify conflict: %v", ErrExecQuery, err)
	}

	if existing.Status == domain.SlotBlocked {
		return ErrSlotBlocked
	}
	return ErrSlotFull
}

// classifyReleaseConflict определяет причину несработавшего Release
func (r *Repository) classifyReleaseConflict(ctx context.Context, id int64) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("%w: Release - classify conflict: %v", ErrExecQuery, err)
	}

	if existing.Status == domain.SlotBlocked {
		return ErrSlotBlocked
	}
	return ErrNothingToRelease
}

// scanSlot сканирует одну строку слота; sql.ErrNoRows пробрасывается как есть
func (r *Repository) scanSlot(row *sql.Row) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.Scope.Type,
		&s.Scope.ID,
		&s.SlotDate,
		&s.StartTime,
		&s.EndTime,
		&s.MaxCapacity,
		&s.CurrentBookings,
		&s.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.Scope.Type,
			&s.Scope.ID,
			&s.SlotDate,
			&s.StartTime,
			&s.EndTime,
			&s.MaxCapacity,
			&s.CurrentBookings,
			&s.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
