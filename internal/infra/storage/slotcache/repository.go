package slotcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slotcache.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slotcache.repository: failed to execute query")
)

// insertBatchSize максимальное количество строк в одном INSERT
const insertBatchSize = 500

// Repository материализованные слоты (таблица availability_slots)
// Таблица не читается при расчёте доступности и устаревает до следующей генерации
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReplaceRange удаляет слоты периода [start, end] и записывает новые
// Вызывается внутри транзакции
func (r *Repository) ReplaceRange(ctx context.Context, start, end time.Time, teamMemberID *int64, slots []domain.CachedSlot) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.GtOrEq{"slot_date": start}).
		Where(squirrel.LtOrEq{"slot_date": end}).
		Where(squirrel.Eq{"team_member_id": teamMemberID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReplaceRange - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("%w: ReplaceRange - execute delete: %v", ErrExecQuery, err)
	}

	var inserted int64
	for from := 0; from < len(slots); from += insertBatchSize {
		to := from + insertBatchSize
		if to > len(slots) {
			to = len(slots)
		}

		n, err := r.insertBatch(ctx, executor, slots[from:to])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	return inserted, nil
}

func (r *Repository) insertBatch(ctx context.Context, executor dbmetrics.DBExecutor, slots []domain.CachedSlot) (int64, error) {
	builder := psqlbuilder.Insert("availability_slots").
		Columns("slot_date", "team_member_id", "start_time", "end_time", "is_available", "generated_at")

	for _, s := range slots {
		builder = builder.Values(s.Date, s.TeamMemberID, s.StartTime, s.EndTime, s.IsAvailable, s.GeneratedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: insertBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: insertBatch - execute insert: %v", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: insertBatch - get rows affected: %v", ErrExecQuery, err)
	}
	return n, nil
}
