package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	slots "github.com/m04kA/SMC-ClinicBooking/internal/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	whRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
)

// Service расчёт доступности на день и на период
type Service struct {
	hours        WorkingHoursStore
	bookingRepo  BookingRepository
	metrics      Metrics
	logger       Logger
	maxRangeDays int
}

// NewService создает новый экземпляр сервиса доступности
// metrics может быть nil
func NewService(
	hours WorkingHoursStore,
	bookingRepo BookingRepository,
	metrics Metrics,
	logger Logger,
	maxRangeDays int,
) *Service {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &Service{
		hours:        hours,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		logger:       logger,
		maxRangeDays: maxRangeDays,
	}
}

// LoadDay получает рабочие часы и неотменённые записи на дату для записи
// Отсутствие расписания закрывает день, сбой хранилища возвращает ErrInternal
// Внутри транзакции записи дня блокируются репозиторием
func (s *Service) LoadDay(ctx context.Context, date time.Time, teamMemberID *int64) (*models.DaySchedule, error) {
	wh, err := s.lookupHours(ctx, slots.Weekday(date))
	if err != nil {
		return nil, fmt.Errorf("%w: LoadDay - failed to get working hours: %v", ErrInternal, err)
	}
	return s.loadBookings(ctx, date, teamMemberID, wh)
}

func (s *Service) loadBookings(ctx context.Context, date time.Time, teamMemberID *int64, wh *domain.WorkingHours) (*models.DaySchedule, error) {
	schedule := &models.DaySchedule{Date: date, WorkingHours: wh, Bookings: []*domain.Booking{}}
	if !wh.IsOpen() {
		return schedule, nil
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, date, teamMemberID, false)
	if err != nil {
		s.logger.Error("LoadDay: failed to get bookings for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: LoadDay - failed to get bookings: %v", ErrInternal, err)
	}
	schedule.Bookings = bookings

	return schedule, nil
}

// ForDay рассчитывает доступность одного дня
func (s *Service) ForDay(ctx context.Context, q models.DayQuery) (*domain.DayAvailability, error) {
	if q.RequiredMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	schedule, err := s.loadBookings(ctx, q.Date, q.TeamMemberID, s.workingHours(ctx, slots.Weekday(q.Date)))
	if err != nil {
		return nil, err
	}

	return s.Compute(schedule, q)
}

// Compute рассчитывает доступность дня по уже загруженному расписанию
func (s *Service) Compute(schedule *models.DaySchedule, q models.DayQuery) (*domain.DayAvailability, error) {
	if q.RequiredMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	interval := q.IntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultDayIntervalMinutes
	}

	day := &domain.DayAvailability{
		Date:   schedule.Date,
		Status: domain.DayClosed,
		Slots:  []domain.Slot{},
	}

	wh := schedule.WorkingHours
	if !wh.IsOpen() {
		s.observe(day.Status)
		return day, nil
	}

	candidates, err := slots.Generate(wh, interval)
	if err != nil {
		return nil, fmt.Errorf("%w: Compute - generate slots: %v", ErrInternal, err)
	}

	buffer := wh.BufferMinutes
	if q.BufferMinutes != nil {
		buffer = *q.BufferMinutes
	}

	resolved, err := slots.Resolve(candidates, schedule.Bookings, slots.Params{
		RequiredMinutes:  q.RequiredMinutes,
		BufferMinutes:    buffer,
		DayEnd:           wh.EndTime,
		MaxAppointments:  wh.MaxAppointments,
		ExcludeBookingID: q.ExcludeBookingID,
	})
	if err != nil {
		s.logger.Error("Compute: failed to resolve %s: %v", schedule.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Compute - resolve conflicts: %v", ErrInternal, err)
	}

	day.WorkingHours = wh
	day.Slots = resolved
	day.Status = domain.StatusFor(true, resolved)
	s.observe(day.Status)

	return day, nil
}

// ForRange рассчитывает доступность всех дней периода включительно
// Рабочие часы читаются один раз на день недели, записи - одним запросом на весь период
func (s *Service) ForRange(ctx context.Context, q models.RangeQuery) (*models.RangeAvailability, error) {
	if q.RequiredMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if q.EndDate.Before(q.StartDate) {
		return nil, ErrInvalidRange
	}
	if days := slots.DaysBetween(q.StartDate, q.EndDate) + 1; days > s.maxRangeDays {
		return nil, fmt.Errorf("%w: %d days, max %d", ErrRangeTooLarge, days, s.maxRangeDays)
	}

	s.logger.Info("ForRange: computing %s..%s team_member=%v duration=%d",
		q.StartDate.Format(domain.DateFormat), q.EndDate.Format(domain.DateFormat), ptrValue(q.TeamMemberID), q.RequiredMinutes)

	bookings, err := s.bookingRepo.ListByDateRange(ctx, q.StartDate, q.EndDate, q.TeamMemberID)
	if err != nil {
		s.logger.Error("ForRange: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: ForRange - failed to get bookings: %v", ErrInternal, err)
	}

	bookingsByDate := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		key := b.Date.Format(domain.DateFormat)
		bookingsByDate[key] = append(bookingsByDate[key], b)
	}

	hoursByWeekday := make(map[int]*domain.WorkingHours, 7)
	result := &models.RangeAvailability{}

	for _, date := range slots.Dates(q.StartDate, q.EndDate) {
		weekday := slots.Weekday(date)
		wh, ok := hoursByWeekday[weekday]
		if !ok {
			wh = s.workingHours(ctx, weekday)
			hoursByWeekday[weekday] = wh
		}

		day, err := s.Compute(&models.DaySchedule{
			Date:         date,
			WorkingHours: wh,
			Bookings:     bookingsByDate[date.Format(domain.DateFormat)],
		}, models.DayQuery{
			Date:            date,
			TeamMemberID:    q.TeamMemberID,
			RequiredMinutes: q.RequiredMinutes,
			IntervalMinutes: q.IntervalMinutes,
			BufferMinutes:   q.BufferMinutes,
		})
		if err != nil {
			return nil, err
		}
		result.Days = append(result.Days, day)
	}

	return result, nil
}

// MaxRangeDays максимальная длина периода в днях
func (s *Service) MaxRangeDays() int {
	return s.maxRangeDays
}

// workingHours возвращает nil вместо ошибки: для чтения день без расписания закрыт
func (s *Service) workingHours(ctx context.Context, weekday int) *domain.WorkingHours {
	wh, err := s.lookupHours(ctx, weekday)
	if err != nil {
		s.logger.Error("workingHours: lookup failed for weekday=%d, day is closed: %v", weekday, err)
		return nil
	}
	return wh
}

// lookupHours nil без ошибки, если расписания на день недели нет
func (s *Service) lookupHours(ctx context.Context, weekday int) (*domain.WorkingHours, error) {
	wh, err := s.hours.GetByDay(ctx, weekday)
	if err != nil {
		if errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
			s.logger.Warn("workingHours: no schedule for weekday=%d, day is closed", weekday)
			return nil, nil
		}
		return nil, err
	}
	return wh, nil
}

func (s *Service) observe(status domain.DayStatus) {
	if s.metrics != nil {
		s.metrics.ObserveDay(string(status))
	}
}

func ptrValue(p *int64) interface{} {
	if p == nil {
		return "any"
	}
	return *p
}
