package move_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	sdRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/serviceduration"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// UseCase перенос бронирования на другую дату и время
type UseCase struct {
	bookingRepo    BookingRepository
	days           DayCalculator
	durations      ServiceDurationRepository
	notifier       Notifier
	metrics        Metrics
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
	autoSubstitute bool
	dayInterval    int
	teamInterval   int
}

// NewUseCase создает новый экземпляр use case
// autoSubstitute: при занятом слоте выбирается следующий свободный вместо ErrSlotConflict
// Шаг сетки для поиска замены берётся из настроек, неположительный заменяется значением по умолчанию
func NewUseCase(
	bookingRepo BookingRepository,
	days DayCalculator,
	durations ServiceDurationRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
	autoSubstitute bool,
	dayInterval int,
	teamInterval int,
) *UseCase {
	if dayInterval <= 0 {
		dayInterval = domain.DefaultDayIntervalMinutes
	}
	if teamInterval <= 0 {
		teamInterval = domain.DefaultTeamIntervalMinutes
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		days:           days,
		durations:      durations,
		notifier:       notifier,
		metrics:        metrics,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		autoSubstitute: autoSubstitute,
		dayInterval:    dayInterval,
		teamInterval:   teamInterval,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет перенос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveBooking: id=%d, new_date=%s, new_time=%s, auto_substitute=%t",
		req.BookingID, req.NewDate.Format(domain.DateFormat), req.NewTime, uc.autoSubstitute)

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveBooking: validation failed: %v", err)
		return nil, err
	}
	if isDateInPast(req.NewDate, uc.timeProvider.Now()) {
		uc.logger.Warn("MoveBooking: date %s is in the past", req.NewDate.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	resp := &Response{RequestedTime: req.NewTime}

	// 2. Проверка и перенос в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !b.CanBeMoved() {
			return fmt.Errorf("%w: status %s", ErrNotMovable, b.Status)
		}

		if b.Date.Equal(req.NewDate) && b.StartTime == req.NewTime {
			resp.Booking = b
			return nil
		}

		start, substituted, err := uc.resolveTarget(txCtx, b, req)
		if err != nil {
			return err
		}

		if err := uc.bookingRepo.Reschedule(txCtx, b.ID, req.NewDate, start); err != nil {
			if errors.Is(err, domain.ErrSlotConflict) {
				return err
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		b.Date = req.NewDate
		b.StartTime = start
		resp.Booking = b
		resp.Substituted = substituted
		return nil
	})

	if err != nil {
		return nil, uc.mapError(req, err)
	}

	if resp.Substituted {
		uc.logger.Info("MoveBooking: id=%d moved to %s %s instead of requested %s",
			resp.Booking.ID, req.NewDate.Format(domain.DateFormat), resp.Booking.StartTime, req.NewTime)
	} else {
		uc.logger.Info("MoveBooking: id=%d moved to %s %s", resp.Booking.ID, req.NewDate.Format(domain.DateFormat), resp.Booking.StartTime)
	}

	// 3. Уведомления после фиксации
	uc.notifier.BookingMoved(ctx, resp.Booking)

	return resp, nil
}

// resolveTarget проверяет запрошенное время исключая саму запись
// При конфликте и включённой подстановке ищет следующий свободный слот того же дня
func (uc *UseCase) resolveTarget(ctx context.Context, b *domain.Booking, req *Request) (types.TimeString, bool, error) {
	buffer, err := uc.serviceBuffer(ctx, b.ServiceName)
	if err != nil {
		return "", false, err
	}

	schedule, err := uc.days.LoadDay(ctx, req.NewDate, b.TeamMemberID)
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
	}
	wh := schedule.WorkingHours
	if !wh.IsOpen() {
		return "", false, ErrClinicClosed
	}

	dayBuffer := wh.BufferMinutes
	if buffer != nil {
		dayBuffer = *buffer
	}

	err = availability.CheckSlot(wh, req.NewTime, schedule.Bookings, availability.Params{
		RequiredMinutes:  b.ServiceDurationMinutes,
		BufferMinutes:    dayBuffer,
		DayEnd:           wh.EndTime,
		MaxAppointments:  wh.MaxAppointments,
		ExcludeBookingID: &b.ID,
	})
	switch {
	case err == nil:
		return req.NewTime, false, nil
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		return "", false, fmt.Errorf("%w: %s+%dmin, working hours %s-%s", ErrInvalidTimeSlot,
			req.NewTime, b.ServiceDurationMinutes, wh.StartTime, wh.EndTime)
	case errors.Is(err, availability.ErrDayLimitReached):
		return "", false, fmt.Errorf("%w: limit %d", ErrDayFull, wh.MaxAppointments)
	case !errors.Is(err, domain.ErrSlotConflict):
		return "", false, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}

	conflict := domain.NewSlotConflict(req.NewDate, req.NewTime, b.TeamMemberID, nil)
	if !uc.autoSubstitute {
		return "", false, conflict
	}

	day, err := uc.days.Compute(schedule, models.DayQuery{
		Date:             req.NewDate,
		TeamMemberID:     b.TeamMemberID,
		RequiredMinutes:  b.ServiceDurationMinutes,
		IntervalMinutes:  uc.intervalFor(b.TeamMemberID),
		BufferMinutes:    buffer,
		ExcludeBookingID: &b.ID,
	})
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to compute day: %v", ErrInternal, err)
	}

	alternative, ok := availability.FindAlternative(day.Slots, req.NewTime)
	if !ok {
		return "", false, conflict
	}
	return alternative, true, nil
}

func (uc *UseCase) serviceBuffer(ctx context.Context, serviceName string) (*int, error) {
	sd, err := uc.durations.GetByName(ctx, serviceName)
	if err != nil {
		if errors.Is(err, sdRepo.ErrServiceDurationNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get service duration: %v", ErrInternal, err)
	}
	return &sd.BufferMinutes, nil
}

func (uc *UseCase) mapError(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotConflict) || txmanager.IsSerializationFailure(err):
		uc.logger.Warn("MoveBooking: slot %s %s is taken: %v", req.NewDate.Format(domain.DateFormat), req.NewTime, err)
		if uc.metrics != nil {
			uc.metrics.ObserveSlotConflict("move")
		}
		var conflict *domain.SlotConflictError
		if errors.As(err, &conflict) {
			return conflict
		}
		return domain.NewSlotConflict(req.NewDate, req.NewTime, nil, err)
	case errors.Is(err, ErrBookingNotFound):
		uc.logger.Warn("MoveBooking: booking id=%d not found", req.BookingID)
		return err
	case errors.Is(err, ErrNotMovable), errors.Is(err, ErrClinicClosed),
		errors.Is(err, ErrInvalidTimeSlot), errors.Is(err, ErrDayFull):
		uc.logger.Warn("MoveBooking: rejected: %v", err)
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("MoveBooking: %v", err)
		return err
	default:
		uc.logger.Error("MoveBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) intervalFor(teamMemberID *int64) int {
	if teamMemberID != nil {
		return uc.teamInterval
	}
	return uc.dayInterval
}
