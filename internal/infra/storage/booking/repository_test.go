package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	b := &domain.Booking{
		Date:                   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:              "10:00",
		ServiceName:            "consultation",
		ServiceDurationMinutes: 30,
		Status:                 domain.StatusPending,
		CustomerName:           "Anna",
		CustomerEmail:          "anna@example.com",
	}

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolationIsSlotConflict(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{name: "unique violation", code: "23505"},
		{name: "serialization failure", code: "40001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), &domain.Booking{
				Date:                   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
				StartTime:              "10:00",
				TeamMemberID:           ptr.Ptr(int64(3)),
				ServiceDurationMinutes: 30,
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSlotConflict)

			var conflict *domain.SlotConflictError
			require.True(t, errors.As(err, &conflict))
			require.NotNil(t, conflict.TeamMemberID)
			assert.Equal(t, int64(3), *conflict.TeamMemberID)
		})
	}
}

func TestRepository_Create_OtherErrorIsExec(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Create(context.Background(), &domain.Booking{StartTime: "10:00", ServiceDurationMinutes: 30})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, domain.ErrSlotConflict)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1$`).
		WithArgs(int64(7)).
		WillReturnRows(bookingRows().AddRow(
			int64(7), date, "10:00:00", int64(2), "botox", int64(45), "confirmed",
			"Anna", "anna@example.com", nil, "first visit", "pi_123", nil, nil, now, now,
		))

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "10:00", b.StartTime.String())
	require.NotNil(t, b.TeamMemberID)
	assert.Equal(t, int64(2), *b.TeamMemberID)
	assert.Equal(t, 45, b.ServiceDurationMinutes)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Nil(t, b.CustomerPhone)
	require.NotNil(t, b.Notes)
	assert.Equal(t, "first visit", *b.Notes)
	assert.Nil(t, b.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT .* FROM bookings`).WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ListByDate_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE .* ORDER BY booking_date ASC, start_time ASC FOR UPDATE`).
		WillReturnRows(bookingRows())
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), dbmetrics.SqlTxWrapper{Tx: tx})

	got, err := repo.ListByDate(ctx, date, nil, false)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByDateRange_NoLockAndExcludesCancelled(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE booking_date >= \$1 AND booking_date <= \$2 AND team_member_id = \$3 AND status <> \$4 ORDER BY booking_date ASC, start_time ASC$`).
		WithArgs(start, end, int64(5), "cancelled").
		WillReturnRows(bookingRows())

	_, err := repo.ListByDateRange(context.Background(), start, end, ptr.Ptr(int64(5)))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`UPDATE bookings SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 99, ptr.Ptr("по просьбе клиента"))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Reschedule_Conflict(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`UPDATE bookings SET booking_date`).WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Reschedule(context.Background(), 1, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), "11:00")
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("completed", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 3, domain.StatusCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}
