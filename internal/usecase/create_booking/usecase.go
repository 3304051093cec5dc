package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	sdRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/serviceduration"
	tmRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/teammember"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	days         DayLoader
	durations    ServiceDurationRepository
	teamMembers  TeamMemberRepository
	payments     PaymentClient
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// payments и metrics могут быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	days DayLoader,
	durations ServiceDurationRepository,
	teamMembers TeamMemberRepository,
	payments PaymentClient,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		days:         days,
		durations:    durations,
		teamMembers:  teamMembers,
		payments:     payments,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, team_member=%v, service=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, teamMemberLog(req.TeamMemberID), req.ServiceName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	// 3. Длительность и буфер услуги
	duration, buffer, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Специалист
	if req.TeamMemberID != nil {
		if err := uc.checkTeamMember(ctx, *req.TeamMemberID); err != nil {
			return nil, err
		}
	}

	// 5. Оплата
	status, paid, err := uc.paymentStatus(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Date:                   req.Date,
		StartTime:              req.StartTime,
		TeamMemberID:           req.TeamMemberID,
		ServiceName:            strings.TrimSpace(req.ServiceName),
		ServiceDurationMinutes: duration,
		Status:                 status,
		CustomerName:           strings.TrimSpace(req.CustomerName),
		CustomerEmail:          strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:          req.CustomerPhone,
		Notes:                  req.Notes,
		PaymentIntentID:        req.PaymentIntentID,
	}

	// 6. Проверка слота и вставка в одной транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		schedule, err := uc.days.LoadDay(txCtx, req.Date, req.TeamMemberID)
		if err != nil {
			return fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
		}

		if !schedule.WorkingHours.IsOpen() {
			return ErrClinicClosed
		}

		err = availability.CheckSlot(schedule.WorkingHours, req.StartTime, schedule.Bookings, availability.Params{
			RequiredMinutes: duration,
			BufferMinutes:   bufferOrDefault(buffer, schedule.WorkingHours),
			DayEnd:          schedule.WorkingHours.EndTime,
			MaxAppointments: schedule.WorkingHours.MaxAppointments,
		})
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrSlotConflict):
			return domain.NewSlotConflict(req.Date, req.StartTime, req.TeamMemberID, nil)
		case errors.Is(err, availability.ErrOutsideWorkingHours):
			return fmt.Errorf("%w: %s+%dmin, working hours %s-%s", ErrInvalidTimeSlot,
				req.StartTime, duration, schedule.WorkingHours.StartTime, schedule.WorkingHours.EndTime)
		case errors.Is(err, availability.ErrDayLimitReached):
			return fmt.Errorf("%w: limit %d", ErrDayFull, schedule.WorkingHours.MaxAppointments)
		default:
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, domain.ErrSlotConflict) {
				return err
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) || txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: slot %s %s is taken: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
			uc.observeConflict()
			var conflict *domain.SlotConflictError
			if errors.As(err, &conflict) {
				return nil, conflict
			}
			return nil, domain.NewSlotConflict(req.Date, req.StartTime, req.TeamMemberID, err)
		}
		if errors.Is(err, ErrClinicClosed) || errors.Is(err, ErrInvalidTimeSlot) || errors.Is(err, ErrDayFull) {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d status=%s", created.ID, created.Status)

	// 7. Уведомления после фиксации транзакции
	uc.notifier.BookingCreated(ctx, created)

	return &Response{Booking: created, Paid: paid}, nil
}

// resolveDuration возвращает длительность и буфер из настроек услуги
// buffer == nil - используется буфер рабочего дня
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, *int, error) {
	sd, err := uc.durations.GetByName(ctx, strings.TrimSpace(req.ServiceName))
	if err != nil {
		if !errors.Is(err, sdRepo.ErrServiceDurationNotFound) {
			uc.logger.Error("CreateBooking: failed to get service duration for %q: %v", req.ServiceName, err)
			return 0, nil, fmt.Errorf("%w: failed to get service duration: %v", ErrInternal, err)
		}
		if req.ServiceDurationMinutes == 0 {
			uc.logger.Warn("CreateBooking: unknown service %q without duration", req.ServiceName)
			return 0, nil, fmt.Errorf("%w: service duration is required for unknown service", ErrInvalidInput)
		}
		return req.ServiceDurationMinutes, nil, nil
	}

	duration := req.ServiceDurationMinutes
	if duration == 0 {
		duration = sd.DurationMinutes
	}
	buffer := sd.BufferMinutes
	return duration, &buffer, nil
}

func (uc *UseCase) checkTeamMember(ctx context.Context, id int64) error {
	member, err := uc.teamMembers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tmRepo.ErrTeamMemberNotFound) {
			uc.logger.Warn("CreateBooking: team member id=%d not found", id)
			return ErrTeamMemberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get team member id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to get team member: %v", ErrInternal, err)
	}
	if !member.IsActive {
		uc.logger.Warn("CreateBooking: team member id=%d is inactive", id)
		return fmt.Errorf("%w: inactive", ErrTeamMemberNotFound)
	}
	return nil
}

// paymentStatus начальный статус записи по состоянию payment intent
func (uc *UseCase) paymentStatus(ctx context.Context, intentID *string) (domain.BookingStatus, bool, error) {
	if intentID == nil || *intentID == "" || uc.payments == nil {
		return domain.StatusPending, false, nil
	}

	payment, err := uc.payments.GetPayment(ctx, *intentID)
	if err != nil {
		if errors.Is(err, payments.ErrPaymentNotFound) {
			uc.logger.Warn("CreateBooking: payment intent %s not found", *intentID)
			return "", false, ErrPaymentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get payment %s: %v", *intentID, err)
		return "", false, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	if payment.IsPaid() {
		return domain.StatusConfirmed, true, nil
	}
	return domain.StatusPending, false, nil
}

func (uc *UseCase) observeConflict() {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotConflict("create")
	}
}

func bufferOrDefault(buffer *int, wh *domain.WorkingHours) int {
	if buffer != nil {
		return *buffer
	}
	return wh.BufferMinutes
}

func teamMemberLog(id *int64) interface{} {
	if id == nil {
		return "any"
	}
	return *id
}
