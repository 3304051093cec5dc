package serviceduration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

var columns = []string{"service_name", "duration_minutes", "buffer_minutes", "updated_at"}

// Repository репозиторий длительностей услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByName возвращает длительность и буфер услуги
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.ServiceDuration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("service_durations").
		Where(squirrel.Eq{"service_name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	sd, err := scan(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceDurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - scan service duration: %v", ErrScanRow, err)
	}

	return sd, nil
}

// List возвращает все длительности услуг, отсортированные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.ServiceDuration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("service_durations").
		OrderBy("service_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ServiceDuration, 0)
	for rows.Next() {
		sd, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или обновляет длительность услуги
func (r *Repository) Upsert(ctx context.Context, sd *domain.ServiceDuration) (*domain.ServiceDuration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_durations").
		Columns("service_name", "duration_minutes", "buffer_minutes").
		Values(sd.ServiceName, sd.DurationMinutes, sd.BufferMinutes).
		Suffix(`ON CONFLICT (service_name) DO UPDATE SET
			duration_minutes = EXCLUDED.duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	sd.UpdatedAt = updatedAt.Time

	return sd, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scan(row rowScanner) (*domain.ServiceDuration, error) {
	var sd domain.ServiceDuration
	var updatedAt sql.NullTime
	if err := row.Scan(&sd.ServiceName, &sd.DurationMinutes, &sd.BufferMinutes, &updatedAt); err != nil {
		return nil, err
	}
	sd.UpdatedAt = updatedAt.Time
	return &sd, nil
}
