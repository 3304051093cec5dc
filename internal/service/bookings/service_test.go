package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	filter   domain.BookingsFilter
	listErr  error
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.bookings[id].Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason *string) error {
	now := time.Now()
	f.bookings[id].Status = domain.StatusCancelled
	f.bookings[id].CancellationReason = reason
	f.bookings[id].CancelledAt = &now
	return nil
}

type recordingNotifier struct {
	cancelled []int64
	changed   []int64
}

func (n *recordingNotifier) BookingCancelled(_ context.Context, b *domain.Booking) {
	n.cancelled = append(n.cancelled, b.ID)
}

func (n *recordingNotifier) BookingStatusChanged(_ context.Context, b *domain.Booking) {
	n.changed = append(n.changed, b.ID)
}

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeRepo, *recordingNotifier) {
	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, Date: date, StartTime: "10:00", ServiceName: "consultation", ServiceDurationMinutes: 30, Status: domain.StatusConfirmed},
		2: {ID: 2, Date: date, StartTime: "11:00", ServiceName: "consultation", ServiceDurationMinutes: 30, Status: domain.StatusCompleted},
	}}
	notifier := &recordingNotifier{}
	return NewService(repo, notifier, directTx{}, nopLogger{}), repo, notifier
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, "10:30", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListByDate(t *testing.T) {
	svc, repo, _ := newService()
	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	resp, err := svc.ListByDate(context.Background(), &models.ListBookingsRequest{
		Date: date, TeamMemberID: ptr.Ptr(int64(4)), IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.True(t, repo.filter.IsSingleDay())
	assert.True(t, repo.filter.IncludeCancelled)
	require.NotNil(t, repo.filter.TeamMemberID)

	_, err = svc.ListByDate(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("timeout")
	_, err = svc.ListByDate(context.Background(), &models.ListBookingsRequest{Date: date})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Cancel(t *testing.T) {
	svc, _, notifier := newService()

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: ptr.Ptr("заболел")})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []int64{1}, notifier.cancelled)

	_, err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel, "повторная отмена")

	_, err = svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel, "завершённую запись отменить нельзя")
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		status  string
		wantErr error
	}{
		{name: "подтверждённая -> scheduled", id: 1, status: "scheduled"},
		{name: "подтверждённая -> completed", id: 1, status: "completed"},
		{name: "неизвестный статус", id: 1, status: "no_show", wantErr: ErrInvalidStatus},
		{name: "завершённая неизменна", id: 2, status: "pending", wantErr: ErrCannotChangeStatus},
		{name: "не найдено", id: 5, status: "pending", wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier := newService()

			resp, err := svc.UpdateStatus(context.Background(), tt.id, &models.UpdateStatusRequest{Status: tt.status})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, notifier.changed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, domain.BookingStatus(tt.status), repo.bookings[tt.id].Status)
			assert.Equal(t, []int64{tt.id}, notifier.changed)
		})
	}
}

func TestService_UpdateStatus_CancelledGoesThroughCancel(t *testing.T) {
	svc, repo, notifier := newService()

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.NotNil(t, repo.bookings[1].CancelledAt)
	assert.Equal(t, []int64{1}, notifier.cancelled)
	assert.Empty(t, notifier.changed)
}
