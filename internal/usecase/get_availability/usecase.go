package get_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	sdRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/serviceduration"
	tmRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/teammember"
	availabilitySvc "github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
)

// UseCase use case для получения доступности клиники и специалистов
type UseCase struct {
	availability AvailabilityService
	durations    ServiceDurationRepository
	teamMembers  TeamMemberRepository
	logger       Logger
	dayInterval  int
	teamInterval int
}

// NewUseCase создает новый экземпляр use case
// Неположительный шаг сетки заменяется значением по умолчанию
func NewUseCase(
	availability AvailabilityService,
	durations ServiceDurationRepository,
	teamMembers TeamMemberRepository,
	logger Logger,
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
		availability: availability,
		durations:    durations,
		teamMembers:  teamMembers,
		logger:       logger,
		dayInterval:  dayInterval,
		teamInterval: teamInterval,
	}
}

// Day доступность клиники целиком на дату
// Длительность обязательна: явная или из настроек услуги
func (uc *UseCase) Day(ctx context.Context, req *DayRequest) (*DayResponse, error) {
	uc.logger.Info("GetAvailability: date=%s, service=%q, duration=%d",
		req.Date.Format(domain.DateFormat), req.ServiceName, req.ServiceDurationMinutes)

	// 1. Валидация
	if err := validateDate("date", req.Date); err != nil {
		return nil, err
	}

	// 2. Длительность и буфер
	duration, buffer, err := uc.requiredDuration(ctx, req.ServiceName, req.ServiceDurationMinutes)
	if err != nil {
		return nil, err
	}

	// 3. Расчёт
	day, err := uc.availability.ForDay(ctx, models.DayQuery{
		Date:            req.Date,
		RequiredMinutes: duration,
		IntervalMinutes: uc.dayInterval,
		BufferMinutes:   buffer,
	})
	if err != nil {
		return nil, uc.mapError("GetAvailability", err)
	}

	return &DayResponse{Day: day, DurationMinutes: duration, IntervalMinutes: uc.dayInterval}, nil
}

// TeamDay доступность специалиста на дату
func (uc *UseCase) TeamDay(ctx context.Context, req *TeamDayRequest) (*DayResponse, error) {
	uc.logger.Info("GetTeamAvailability: team_member=%d, date=%s, service=%q, duration=%d",
		req.TeamMemberID, req.Date.Format(domain.DateFormat), req.ServiceName, req.ServiceDurationMinutes)

	if err := validateTeamMemberID(req.TeamMemberID); err != nil {
		return nil, err
	}
	if err := validateDate("date", req.Date); err != nil {
		return nil, err
	}

	duration, buffer, err := uc.requiredDuration(ctx, req.ServiceName, req.ServiceDurationMinutes)
	if err != nil {
		return nil, err
	}

	if err := uc.checkTeamMember(ctx, "GetTeamAvailability", req.TeamMemberID); err != nil {
		return nil, err
	}

	teamMemberID := req.TeamMemberID
	day, err := uc.availability.ForDay(ctx, models.DayQuery{
		Date:            req.Date,
		TeamMemberID:    &teamMemberID,
		RequiredMinutes: duration,
		IntervalMinutes: uc.teamInterval,
		BufferMinutes:   buffer,
	})
	if err != nil {
		return nil, uc.mapError("GetTeamAvailability", err)
	}

	return &DayResponse{Day: day, DurationMinutes: duration, IntervalMinutes: uc.teamInterval}, nil
}

// TeamRange доступность специалиста по дням периода
func (uc *UseCase) TeamRange(ctx context.Context, req *RangeRequest) (*RangeResponse, error) {
	uc.logger.Info("GetTeamRangeAvailability: team_member=%d, %s..%s, service=%q, duration=%d",
		req.TeamMemberID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.ServiceName, req.ServiceDurationMinutes)

	// 1. Валидация
	if err := validateTeamMemberID(req.TeamMemberID); err != nil {
		return nil, err
	}
	if err := validateDate("start_date", req.StartDate); err != nil {
		return nil, err
	}
	if err := validateDate("end_date", req.EndDate); err != nil {
		return nil, err
	}

	// 2. Длительность обязательна
	duration, buffer, err := uc.requiredDuration(ctx, req.ServiceName, req.ServiceDurationMinutes)
	if err != nil {
		return nil, err
	}

	// 3. Специалист
	if err := uc.checkTeamMember(ctx, "GetTeamRangeAvailability", req.TeamMemberID); err != nil {
		return nil, err
	}

	// 4. Расчёт по дням
	teamMemberID := req.TeamMemberID
	result, err := uc.availability.ForRange(ctx, models.RangeQuery{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TeamMemberID:    &teamMemberID,
		RequiredMinutes: duration,
		IntervalMinutes: uc.teamInterval,
		BufferMinutes:   buffer,
	})
	if err != nil {
		return nil, uc.mapError("GetTeamRangeAvailability", err)
	}

	uc.logger.Info("GetTeamRangeAvailability: computed %d days for team_member=%d", len(result.Days), req.TeamMemberID)

	return &RangeResponse{Days: result.Days, DurationMinutes: duration, IntervalMinutes: uc.teamInterval}, nil
}

// requiredDuration длительность и буфер услуги; без длительности - ErrInvalidInput
func (uc *UseCase) requiredDuration(ctx context.Context, serviceName string, explicit int) (int, *int, error) {
	if err := validateDuration(explicit); err != nil {
		return 0, nil, err
	}
	duration, buffer, err := uc.resolveDuration(ctx, serviceName, explicit)
	if err != nil {
		return 0, nil, err
	}
	if duration == 0 {
		return 0, nil, fmt.Errorf("%w: service_duration_minutes is required", ErrInvalidInput)
	}
	return duration, buffer, nil
}

// resolveDuration возвращает длительность и буфер услуги
// Явная длительность приоритетнее длительности услуги; 0 - не определена
func (uc *UseCase) resolveDuration(ctx context.Context, serviceName string, explicit int) (int, *int, error) {
	name := strings.TrimSpace(serviceName)
	if name == "" {
		return explicit, nil, nil
	}

	sd, err := uc.durations.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, sdRepo.ErrServiceDurationNotFound) {
			if explicit > 0 {
				return explicit, nil, nil
			}
			uc.logger.Warn("GetAvailability: unknown service %q", name)
			return 0, nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service duration for %q: %v", name, err)
		return 0, nil, fmt.Errorf("%w: failed to get service duration: %v", ErrInternal, err)
	}

	duration := explicit
	if duration == 0 {
		duration = sd.DurationMinutes
	}
	buffer := sd.BufferMinutes
	return duration, &buffer, nil
}

func (uc *UseCase) checkTeamMember(ctx context.Context, op string, id int64) error {
	member, err := uc.teamMembers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tmRepo.ErrTeamMemberNotFound) {
			uc.logger.Warn("%s: team member id=%d not found", op, id)
			return ErrTeamMemberNotFound
		}
		uc.logger.Error("%s: failed to get team member id=%d: %v", op, id, err)
		return fmt.Errorf("%w: failed to get team member: %v", ErrInternal, err)
	}
	if !member.IsActive {
		uc.logger.Warn("%s: team member id=%d is inactive", op, id)
		return fmt.Errorf("%w: inactive", ErrTeamMemberNotFound)
	}
	return nil
}

func (uc *UseCase) mapError(op string, err error) error {
	switch {
	case errors.Is(err, availabilitySvc.ErrInvalidRange),
		errors.Is(err, availabilitySvc.ErrRangeTooLarge),
		errors.Is(err, availabilitySvc.ErrInvalidDuration):
		uc.logger.Warn("%s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("%s: failed to compute availability: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

