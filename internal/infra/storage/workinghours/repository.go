package workinghours

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// SettingsKey ключ записи с расписанием в таблице settings
const SettingsKey = "working_hours"

// settingsDay элемент JSON-массива в settings.value
type settingsDay struct {
	DayOfWeek       int    `json:"dayOfWeek"`
	IsWorkingDay    bool   `json:"isWorkingDay"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	BufferMinutes   int    `json:"bufferMinutes"`
	MaxAppointments int    `json:"maxAppointments"`
}

// Repository хранилище рабочих часов
// Источник истины - settings[working_hours], таблица working_hours используется как запасной вариант
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDay возвращает расписание на день недели
func (r *Repository) GetByDay(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error) {
	days, err := r.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	for _, wh := range days {
		if wh.DayOfWeek == dayOfWeek {
			return wh, nil
		}
	}

	return r.getRow(ctx, dayOfWeek)
}

// GetAll возвращает расписание на все дни, для которых оно задано
// Записи settings перекрывают строки таблицы
func (r *Repository) GetAll(ctx context.Context) ([]*domain.WorkingHours, error) {
	rows, err := r.listRows(ctx)
	if err != nil {
		return nil, err
	}
	fromSettings, err := r.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]*domain.WorkingHours, 7)
	for _, wh := range rows {
		byDay[wh.DayOfWeek] = wh
	}
	for _, wh := range fromSettings {
		byDay[wh.DayOfWeek] = wh
	}

	result := make([]*domain.WorkingHours, 0, len(byDay))
	for _, wh := range byDay {
		result = append(result, wh)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DayOfWeek < result[j].DayOfWeek })

	return result, nil
}

// Upsert сохраняет расписание дня в settings и в таблицу working_hours
// Должен вызываться внутри транзакции: строка settings блокируется до commit,
// параллельные изменения других дней не теряются
func (r *Repository) Upsert(ctx context.Context, wh *domain.WorkingHours) error {
	if err := r.ensureSettings(ctx); err != nil {
		return err
	}

	days, err := r.loadSettingsForUpdate(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, d := range days {
		if d.DayOfWeek == wh.DayOfWeek {
			days[i] = wh
			replaced = true
		}
	}
	if !replaced {
		days = append(days, wh)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].DayOfWeek < days[j].DayOfWeek })

	if err := r.saveSettings(ctx, days); err != nil {
		return err
	}

	return r.upsertRow(ctx, wh)
}

// ensureSettings создает пустую запись settings, чтобы её можно было заблокировать
func (r *Repository) ensureSettings(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(SettingsKey, "[]").
		Suffix("ON CONFLICT (key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ensureSettings - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ensureSettings - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) loadSettings(ctx context.Context) ([]*domain.WorkingHours, error) {
	return r.selectSettings(ctx, false)
}

func (r *Repository) loadSettingsForUpdate(ctx context.Context) ([]*domain.WorkingHours, error) {
	return r.selectSettings(ctx, true)
}

func (r *Repository) selectSettings(ctx context.Context, forUpdate bool) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("value").
		From("settings").
		Where(squirrel.Eq{"key": SettingsKey})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadSettings - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []*domain.WorkingHours{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loadSettings - scan value: %v", ErrScanRow, err)
	}

	var items []settingsDay
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	result := make([]*domain.WorkingHours, 0, len(items))
	for _, item := range items {
		result = append(result, &domain.WorkingHours{
			DayOfWeek:       item.DayOfWeek,
			IsWorkingDay:    item.IsWorkingDay,
			StartTime:       normalizeTime(item.StartTime),
			EndTime:         normalizeTime(item.EndTime),
			BufferMinutes:   item.BufferMinutes,
			MaxAppointments: item.MaxAppointments,
		})
	}

	return result, nil
}

func (r *Repository) saveSettings(ctx context.Context, days []*domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items := make([]settingsDay, 0, len(days))
	for _, d := range days {
		items = append(items, settingsDay{
			DayOfWeek:       d.DayOfWeek,
			IsWorkingDay:    d.IsWorkingDay,
			StartTime:       d.StartTime.String(),
			EndTime:         d.EndTime.String(),
			BufferMinutes:   d.BufferMinutes,
			MaxAppointments: d.MaxAppointments,
		})
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(SettingsKey, string(raw)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: saveSettings - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: saveSettings - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

var rowColumns = []string{
	"day_of_week",
	"is_working_day",
	"start_time",
	"end_time",
	"buffer_minutes",
	"max_appointments",
	"updated_at",
}

func (r *Repository) getRow(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rowColumns...).
		From("working_hours").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getRow - build select query: %v", ErrBuildQuery, err)
	}

	wh, err := scanRow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getRow - scan working hours: %v", ErrScanRow, err)
	}

	return wh, nil
}

func (r *Repository) listRows(ctx context.Context) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rowColumns...).
		From("working_hours").
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listRows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listRows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		wh, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: listRows - scan row: %v", ErrScanRow, err)
		}
		result = append(result, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listRows - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) upsertRow(ctx context.Context, wh *domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns("day_of_week", "is_working_day", "start_time", "end_time", "buffer_minutes", "max_appointments").
		Values(wh.DayOfWeek, wh.IsWorkingDay, nullableTime(wh.StartTime), nullableTime(wh.EndTime), wh.BufferMinutes, wh.MaxAppointments).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			is_working_day = EXCLUDED.is_working_day,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			buffer_minutes = EXCLUDED.buffer_minutes,
			max_appointments = EXCLUDED.max_appointments,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: upsertRow - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: upsertRow - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(row rowScanner) (*domain.WorkingHours, error) {
	var wh domain.WorkingHours
	var updatedAt sql.NullTime

	err := row.Scan(
		&wh.DayOfWeek,
		&wh.IsWorkingDay,
		&wh.StartTime,
		&wh.EndTime,
		&wh.BufferMinutes,
		&wh.MaxAppointments,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// normalizeTime приводит "HH:MM:SS" из настроек к "HH:MM"
// Некорректное значение остаётся как есть, день тогда считается закрытым
func normalizeTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return types.TimeString(s)
	}
	return ts
}

func nullableTime(ts types.TimeString) interface{} {
	if ts.IsZero() {
		return nil
	}
	return ts
}
