package move_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	sdRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/serviceduration"
	whRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/workinghours"
	availabilitySvc "github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

type fakeHours struct {
	days map[int]*domain.WorkingHours
	err  error
}

func (f *fakeHours) GetByDay(_ context.Context, day int) (*domain.WorkingHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	wh, ok := f.days[day]
	if !ok {
		return nil, whRepo.ErrWorkingHoursNotFound
	}
	return wh, nil
}

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	moves    int
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) Reschedule(_ context.Context, id int64, date time.Time, start types.TimeString) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.moves++
	b.Date = date
	b.StartTime = start
	return nil
}

func (f *fakeRepo) ListByDate(_ context.Context, date time.Time, teamMemberID *int64, includeCancelled bool) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if !b.Date.Equal(date) {
			continue
		}
		if teamMemberID != nil && (b.TeamMemberID == nil || *b.TeamMemberID != *teamMemberID) {
			continue
		}
		if !includeCancelled && b.Status == domain.StatusCancelled {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeRepo) ListByDateRange(context.Context, time.Time, time.Time, *int64) ([]*domain.Booking, error) {
	return nil, errors.New("not used")
}

type noDurations struct{}

func (noDurations) GetByName(context.Context, string) (*domain.ServiceDuration, error) {
	return nil, sdRepo.ErrServiceDurationNotFound
}

type recordingNotifier struct {
	moved []int64
}

func (n *recordingNotifier) BookingMoved(_ context.Context, b *domain.Booking) {
	n.moved = append(n.moved, b.ID)
}

type directTx struct{}

func (directTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	monday  = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func newUseCase(autoSubstitute bool) (*UseCase, *fakeRepo, *recordingNotifier) {
	return newUseCaseWithIntervals(autoSubstitute, 0, 0)
}

func newUseCaseWithIntervals(autoSubstitute bool, dayInterval, teamInterval int) (*UseCase, *fakeRepo, *recordingNotifier) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, Date: monday, StartTime: "09:00", ServiceName: "consultation", ServiceDurationMinutes: 30, Status: domain.StatusConfirmed},
		2: {ID: 2, Date: tuesday, StartTime: "10:00", ServiceName: "consultation", ServiceDurationMinutes: 60, Status: domain.StatusConfirmed},
		3: {ID: 3, Date: monday, StartTime: "11:00", ServiceName: "consultation", ServiceDurationMinutes: 30, Status: domain.StatusCancelled},
	}}
	hours := &fakeHours{days: map[int]*domain.WorkingHours{
		1: {DayOfWeek: 1, IsWorkingDay: true, StartTime: "09:00", EndTime: "12:00"},
		2: {DayOfWeek: 2, IsWorkingDay: true, StartTime: "09:00", EndTime: "12:00"},
	}}
	days := availabilitySvc.NewService(hours, repo, nil, nopLogger{}, 0)
	notifier := &recordingNotifier{}

	uc := NewUseCase(repo, days, noDurations{}, notifier, nil, directTx{}, nopLogger{}, autoSubstitute, dayInterval, teamInterval).
		WithTimeProvider(fixedTime{now: monday})
	return uc, repo, notifier
}

func TestUseCase_Execute_FreeSlot(t *testing.T) {
	uc, repo, notifier := newUseCase(false)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: tuesday, NewTime: "11:00"})
	require.NoError(t, err)

	assert.False(t, resp.Substituted)
	assert.Equal(t, types.TimeString("11:00"), resp.Booking.StartTime)
	assert.True(t, repo.bookings[1].Date.Equal(tuesday))
	assert.Equal(t, []int64{1}, notifier.moved)
}

func TestUseCase_Execute_ExcludesItself(t *testing.T) {
	uc, repo, _ := newUseCase(false)

	// 09:00-09:30 -> 09:15-09:45 пересекается только с самой собой
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: monday, NewTime: "09:15"})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:15"), resp.Booking.StartTime)
	assert.Equal(t, 1, repo.moves)
}

func TestUseCase_Execute_ConflictWithoutSubstitution(t *testing.T) {
	uc, repo, notifier := newUseCase(false)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: tuesday, NewTime: "10:30"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Zero(t, repo.moves)
	assert.Empty(t, notifier.moved)
}

func TestUseCase_Execute_ConflictWithSubstitution(t *testing.T) {
	uc, _, _ := newUseCase(true)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: tuesday, NewTime: "10:00"})
	require.NoError(t, err)

	assert.True(t, resp.Substituted)
	assert.Equal(t, types.TimeString("10:00"), resp.RequestedTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Booking.StartTime, "первый свободный слот строго позже запрошенного")
}

func TestUseCase_Execute_SubstitutionUsesConfiguredInterval(t *testing.T) {
	uc, _, _ := newUseCaseWithIntervals(true, 20, 0)

	// вторник 10:00-11:00 занят, сетка 09:00, 09:20, ... 11:00 без буфера
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: tuesday, NewTime: "09:40"})
	require.NoError(t, err)

	assert.True(t, resp.Substituted)
	assert.Equal(t, types.TimeString("11:00"), resp.Booking.StartTime)

	uc, _, _ = newUseCaseWithIntervals(true, 45, 0)
	resp, err = uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: tuesday, NewTime: "09:40"})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:15"), resp.Booking.StartTime, "слоты по сетке 45 минут")
}

func TestUseCase_Execute_SubstitutionExhausted(t *testing.T) {
	uc, repo, _ := newUseCase(true)
	repo.bookings[4] = &domain.Booking{
		ID: 4, Date: tuesday, StartTime: "11:00", ServiceName: "consultation", ServiceDurationMinutes: 60, Status: domain.StatusPending,
	}

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: tuesday, NewTime: "10:00"})
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestUseCase_Execute_CancelledSlotIsFree(t *testing.T) {
	uc, _, _ := newUseCase(false)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: monday, NewTime: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), resp.Booking.StartTime)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		prepare func(repo *fakeRepo)
		wantErr error
	}{
		{name: "нет id", req: &Request{NewDate: tuesday, NewTime: "10:00"}, wantErr: ErrInvalidInput},
		{name: "некорректное время", req: &Request{BookingID: 1, NewDate: tuesday, NewTime: "9am"}, wantErr: ErrInvalidInput},
		{name: "дата в прошлом", req: &Request{BookingID: 1, NewDate: monday.AddDate(0, 0, -3), NewTime: "10:00"}, wantErr: ErrInvalidDate},
		{name: "не найдено", req: &Request{BookingID: 42, NewDate: tuesday, NewTime: "10:00"}, wantErr: ErrBookingNotFound},
		{name: "отменённую нельзя перенести", req: &Request{BookingID: 3, NewDate: tuesday, NewTime: "09:00"}, wantErr: ErrNotMovable},
		{
			name:    "завершённую нельзя перенести",
			req:     &Request{BookingID: 1, NewDate: tuesday, NewTime: "09:00"},
			prepare: func(repo *fakeRepo) { repo.bookings[1].Status = domain.StatusCompleted },
			wantErr: ErrNotMovable,
		},
		{name: "выходной", req: &Request{BookingID: 1, NewDate: monday.AddDate(0, 0, 5), NewTime: "10:00"}, wantErr: ErrClinicClosed},
		{name: "после закрытия", req: &Request{BookingID: 1, NewDate: tuesday, NewTime: "11:45"}, wantErr: ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _ := newUseCase(true)
			if tt.prepare != nil {
				tt.prepare(repo)
			}
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.moves)
		})
	}
}

func TestUseCase_Execute_WorkingHoursOutageIsInternal(t *testing.T) {
	uc, repo, notifier := newUseCase(false)
	uc.days = availabilitySvc.NewService(&fakeHours{err: errors.New("connection refused")}, repo, nil, nopLogger{}, 0)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: tuesday, NewTime: "11:00"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrClinicClosed)
	assert.Zero(t, repo.moves)
	assert.Empty(t, notifier.moved)
}

func TestUseCase_Execute_SameSlotIsNoop(t *testing.T) {
	uc, repo, _ := newUseCase(false)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, NewDate: monday, NewTime: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), resp.Booking.StartTime)
	assert.Zero(t, repo.moves)
}
