package workinghours

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const settingsJSON = `[
	{"dayOfWeek":1,"isWorkingDay":true,"startTime":"09:00","endTime":"18:00","bufferMinutes":15,"maxAppointments":0},
	{"dayOfWeek":0,"isWorkingDay":false,"startTime":"","endTime":"","bufferMinutes":0,"maxAppointments":0}
]`

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetByDay_FromSettings(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT value FROM settings WHERE key = \$1`).
		WithArgs(SettingsKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(settingsJSON)))

	wh, err := repo.GetByDay(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, wh.IsOpen())
	assert.Equal(t, types.TimeString("09:00"), wh.StartTime)
	assert.Equal(t, 15, wh.BufferMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDay_FallbackToTable(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT value FROM settings`).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(settingsJSON)))
	mock.ExpectQuery(`SELECT .* FROM working_hours WHERE day_of_week = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(int64(3), true, "10:00:00", "16:00:00", int64(0), int64(8), time.Now()))

	wh, err := repo.GetByDay(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), wh.StartTime)
	assert.Equal(t, types.TimeString("16:00"), wh.EndTime)
	assert.Equal(t, 8, wh.MaxAppointments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDay_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT value FROM settings`).WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectQuery(`SELECT .* FROM working_hours`).WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.GetByDay(context.Background(), 5)
	assert.ErrorIs(t, err, ErrWorkingHoursNotFound)
}

func TestRepository_GetByDay_BrokenSettings(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT value FROM settings`).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"not":"an array"}`)))

	_, err := repo.GetByDay(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestRepository_GetAll_SettingsOverrideTable(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .* FROM working_hours ORDER BY day_of_week ASC`).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(int64(1), true, "08:00:00", "12:00:00", int64(0), int64(0), time.Now()).
			AddRow(int64(2), true, "10:00:00", "19:00:00", int64(5), int64(0), time.Now()))
	mock.ExpectQuery(`SELECT value FROM settings`).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(settingsJSON)))

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, 0, all[0].DayOfWeek)
	assert.Equal(t, 1, all[1].DayOfWeek)
	assert.Equal(t, types.TimeString("09:00"), all[1].StartTime, "settings перекрывают таблицу")
	assert.Equal(t, 2, all[2].DayOfWeek)
}

func TestRepository_Upsert_WritesSettingsAndTable(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO settings \(key,value\) VALUES \(\$1,\$2\) ON CONFLICT \(key\) DO NOTHING`).
		WithArgs(SettingsKey, "[]").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT value FROM settings WHERE key = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(settingsJSON)))
	mock.ExpectExec(`INSERT INTO settings \(key,value\) VALUES \(\$1,\$2\) ON CONFLICT \(key\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO working_hours .* ON CONFLICT \(day_of_week\) DO UPDATE`).
		WithArgs(6, false, nil, nil, 0, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.WorkingHours{DayOfWeek: 6, IsWorkingDay: false})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// settingsDays проверяет набор дней недели в JSON значении settings
type settingsDays []int

func (want settingsDays) Match(v driver.Value) bool {
	raw, ok := v.(string)
	if !ok {
		return false
	}
	var items []settingsDay
	if err := json.Unmarshal([]byte(raw), &items); err != nil || len(items) != len(want) {
		return false
	}
	for i, item := range items {
		if item.DayOfWeek != want[i] {
			return false
		}
	}
	return true
}

func TestRepository_Upsert_KeepsOtherDaysUnderLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO settings .* ON CONFLICT \(key\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT value FROM settings WHERE key = \$1 FOR UPDATE`).
		WithArgs(SettingsKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(settingsJSON)))
	// понедельник и воскресенье из settings сохраняются вместе со вторником
	mock.ExpectExec(`INSERT INTO settings \(key,value\) VALUES \(\$1,\$2\) ON CONFLICT \(key\) DO UPDATE`).
		WithArgs(SettingsKey, settingsDays{0, 1, 2}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO working_hours .* ON CONFLICT \(day_of_week\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	err = repo.Upsert(ctx, &domain.WorkingHours{DayOfWeek: 2, IsWorkingDay: true, StartTime: "10:00", EndTime: "14:00"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
