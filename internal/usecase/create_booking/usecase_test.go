package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	sdRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/serviceduration"
	tmRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/teammember"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/payments"
	availabilitySvc "github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/notify"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// memoryStore бронирования в памяти с уникальным ключом (дата, время, специалист)
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
	hours    *domain.WorkingHours
}

func slotKey(date time.Time, start types.TimeString, team *int64) string {
	return fmt.Sprintf("%s|%s|%v", date.Format(domain.DateFormat), start, teamMemberLog(team))
}

func (s *memoryStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey(b.Date, b.StartTime, b.TeamMemberID)
	for _, existing := range s.bookings {
		if existing.OccupiesSlot() && slotKey(existing.Date, existing.StartTime, existing.TeamMemberID) == key {
			return nil, domain.NewSlotConflict(b.Date, b.StartTime, b.TeamMemberID, errors.New("unique violation"))
		}
	}

	s.nextID++
	created := *b
	created.ID = s.nextID
	s.bookings = append(s.bookings, &created)
	return &created, nil
}

func (s *memoryStore) LoadDay(_ context.Context, date time.Time, teamMemberID *int64) (*models.DaySchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule := &models.DaySchedule{Date: date, WorkingHours: s.hours, Bookings: []*domain.Booking{}}
	for _, b := range s.bookings {
		if !b.Date.Equal(date) {
			continue
		}
		if teamMemberID != nil && (b.TeamMemberID == nil || *b.TeamMemberID != *teamMemberID) {
			continue
		}
		copied := *b
		schedule.Bookings = append(schedule.Bookings, &copied)
	}
	return schedule, nil
}

type fakeDurations struct {
	items map[string]*domain.ServiceDuration
	err   error
}

func (f *fakeDurations) GetByName(_ context.Context, name string) (*domain.ServiceDuration, error) {
	if f.err != nil {
		return nil, f.err
	}
	sd, ok := f.items[name]
	if !ok {
		return nil, sdRepo.ErrServiceDurationNotFound
	}
	return sd, nil
}

type fakeTeam struct {
	members map[int64]*domain.TeamMember
}

func (f *fakeTeam) GetByID(_ context.Context, id int64) (*domain.TeamMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, tmRepo.ErrTeamMemberNotFound
	}
	return m, nil
}

type fakePayments struct {
	payment *payments.Payment
	err     error
}

func (f *fakePayments) GetPayment(_ context.Context, _ string) (*payments.Payment, error) {
	return f.payment, f.err
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []int64
}

func (n *recordingNotifier) BookingCreated(_ context.Context, b *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b.ID)
}

type countingMetrics struct {
	mu        sync.Mutex
	conflicts int
}

func (m *countingMetrics) ObserveSlotConflict(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

// directTx выполняет функцию без реальной транзакции
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

var monday = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memoryStore
	notifier *recordingNotifier
	metrics  *countingMetrics
	payments *fakePayments
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		store: &memoryStore{hours: &domain.WorkingHours{
			DayOfWeek: 1, IsWorkingDay: true, StartTime: "09:00", EndTime: "12:00",
		}},
		notifier: &recordingNotifier{},
		metrics:  &countingMetrics{},
		payments: &fakePayments{},
	}
	durations := &fakeDurations{items: map[string]*domain.ServiceDuration{
		"consultation": {ServiceName: "consultation", DurationMinutes: 30, BufferMinutes: 0},
		"botox":        {ServiceName: "botox", DurationMinutes: 45, BufferMinutes: 15},
	}}
	team := &fakeTeam{members: map[int64]*domain.TeamMember{
		1: {ID: 1, Name: "Dr. Ivanova", IsActive: true},
		2: {ID: 2, Name: "Dr. Petrov", IsActive: false},
	}}
	f.uc = NewUseCase(f.store, f.store, durations, team, f.payments, f.notifier, f.metrics, directTx{}, nopLogger{}).
		WithTimeProvider(fixedTime{now: monday.Add(8 * time.Hour)})
	return f
}

func request(start string) *Request {
	return &Request{
		Date:          monday,
		StartTime:     types.TimeString(start),
		ServiceName:   "consultation",
		CustomerName:  "Anna",
		CustomerEmail: "anna@example.com",
	}
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Booking.ID)
	assert.Equal(t, 30, resp.Booking.ServiceDurationMinutes, "длительность берётся из настроек услуги")
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.False(t, resp.Paid)
	assert.Equal(t, []int64{1}, f.notifier.created)
}

func TestUseCase_Execute_PaidIntentConfirms(t *testing.T) {
	f := newFixture()
	f.payments.payment = &payments.Payment{IntentID: "pi_1", Status: "succeeded", Amount: 5000, Currency: "usd"}

	req := request("10:00")
	req.PaymentIntentID = ptr.Ptr("pi_1")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Paid)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
}

func TestUseCase_Execute_PaymentNotFound(t *testing.T) {
	f := newFixture()
	f.payments.err = fmt.Errorf("%w: no such intent", payments.ErrPaymentNotFound)

	req := request("10:00")
	req.PaymentIntentID = ptr.Ptr("pi_missing")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.Empty(t, f.store.bookings)
}

func TestUseCase_Execute_Overlap(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)

	// 09:45 + 30 мин пересекает [10:00, 10:30)
	_, err = f.uc.Execute(context.Background(), request("09:45"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	var conflict *domain.SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, types.TimeString("09:45"), conflict.StartTime)
	assert.Equal(t, 1, f.metrics.conflicts)

	// смежный слот свободен
	_, err = f.uc.Execute(context.Background(), request("10:30"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_ServiceBuffer(t *testing.T) {
	f := newFixture()

	first := request("10:00")
	first.ServiceName = "botox"
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// botox: 45 мин + 15 буфер => занято до 11:00
	_, err = f.uc.Execute(context.Background(), request("10:45"))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	_, err = f.uc.Execute(context.Background(), request("11:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fixture, r *Request)
		wantErr error
	}{
		{
			name:    "пустое имя клиента",
			mutate:  func(_ *fixture, r *Request) { r.CustomerName = " " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "некорректный email",
			mutate:  func(_ *fixture, r *Request) { r.CustomerEmail = "not-an-email" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "некорректное время",
			mutate:  func(_ *fixture, r *Request) { r.StartTime = "25:00" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "неизвестная услуга без длительности",
			mutate:  func(_ *fixture, r *Request) { r.ServiceName = "massage" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "дата в прошлом",
			mutate:  func(_ *fixture, r *Request) { r.Date = monday.AddDate(0, 0, -1) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "выходной",
			mutate:  func(f *fixture, _ *Request) { f.store.hours = &domain.WorkingHours{DayOfWeek: 1} },
			wantErr: ErrClinicClosed,
		},
		{
			name:    "нет расписания",
			mutate:  func(f *fixture, _ *Request) { f.store.hours = nil },
			wantErr: ErrClinicClosed,
		},
		{
			name:    "не помещается до конца дня",
			mutate:  func(_ *fixture, r *Request) { r.StartTime = "11:45" },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "раньше открытия",
			mutate:  func(_ *fixture, r *Request) { r.StartTime = "08:30" },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "специалист не найден",
			mutate:  func(_ *fixture, r *Request) { r.TeamMemberID = ptr.Ptr(int64(9)) },
			wantErr: ErrTeamMemberNotFound,
		},
		{
			name:    "специалист неактивен",
			mutate:  func(_ *fixture, r *Request) { r.TeamMemberID = ptr.Ptr(int64(2)) },
			wantErr: ErrTeamMemberNotFound,
		},
		{
			name: "лимит записей на день",
			mutate: func(f *fixture, _ *Request) {
				f.store.hours.MaxAppointments = 1
				f.store.bookings = []*domain.Booking{{
					ID: 100, Date: monday, StartTime: "09:00", ServiceDurationMinutes: 30, Status: domain.StatusConfirmed,
				}}
			},
			wantErr: ErrDayFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request("10:00")
			tt.mutate(f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.notifier.created)
		})
	}
}

func TestUseCase_Execute_UnknownServiceWithDuration(t *testing.T) {
	f := newFixture()
	req := request("09:00")
	req.ServiceName = "massage"
	req.ServiceDurationMinutes = 60

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.Booking.ServiceDurationMinutes)
}

func TestUseCase_Execute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture()
	f.store.bookings = []*domain.Booking{{
		ID: 1, Date: monday, StartTime: "10:00", ServiceDurationMinutes: 30, Status: domain.StatusCancelled,
	}}
	f.store.nextID = 1

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture()
	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request("10:00")
			req.CustomerName = fmt.Sprintf("Customer %d", i)

			_, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrSlotConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Empty(t, others)
	assert.Len(t, f.store.bookings, 1)
	assert.Len(t, f.notifier.created, 1)
}

func TestUseCase_Execute_LookupErrorsAreInternal(t *testing.T) {
	f := newFixture()
	f.uc.durations = &fakeDurations{err: errors.New("connection refused")}

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, ErrInternal)
}

type brokenHours struct{}

func (brokenHours) GetByDay(context.Context, int) (*domain.WorkingHours, error) {
	return nil, errors.New("connection refused")
}

type noBookings struct{}

func (noBookings) ListByDate(context.Context, time.Time, *int64, bool) ([]*domain.Booking, error) {
	return nil, nil
}

func (noBookings) ListByDateRange(context.Context, time.Time, time.Time, *int64) ([]*domain.Booking, error) {
	return nil, nil
}

func TestUseCase_Execute_WorkingHoursOutageIsInternal(t *testing.T) {
	f := newFixture()
	f.uc.days = availabilitySvc.NewService(brokenHours{}, noBookings{}, nil, nopLogger{}, 0)

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrClinicClosed)
	assert.Empty(t, f.store.bookings)
}

// slowPublisher держит публикацию до закрытия release
type slowPublisher struct {
	release chan struct{}
}

func (p *slowPublisher) Publish(context.Context, events.BookingEvent) error {
	<-p.release
	return nil
}

func TestUseCase_Execute_DoesNotWaitForNotifications(t *testing.T) {
	f := newFixture()
	pub := &slowPublisher{release: make(chan struct{})}
	notifier := notify.NewService(pub, nil, nopLogger{})
	f.uc.notifier = notifier

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Execute(context.Background(), request("10:00"))
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("создание записи ждёт публикации события")
	}

	close(pub.release)
	notifier.Wait()
}
