package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	availabilitySvc "github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
)

// UseCase пересчёт таблицы availability_slots за период
type UseCase struct {
	calculator   RangeCalculator
	slotRepo     SlotCacheRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	dayInterval  int
	teamInterval int
}

// NewUseCase создает новый экземпляр use case
// Шаг сетки из запроса важнее настроек, неположительный заменяется значением по умолчанию
func NewUseCase(
	calculator RangeCalculator,
	slotRepo SlotCacheRepository,
	txManager TransactionManager,
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
		calculator:   calculator,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		dayInterval:  dayInterval,
		teamInterval: teamInterval,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute рассчитывает слоты периода и заменяет ими строки кеша
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: %s..%s team_member=%v duration=%d",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), teamMemberLog(req.TeamMemberID), req.ServiceDurationMinutes)

	// 1. Валидация
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.ServiceDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: serviceDurationMinutes must be positive", ErrInvalidInput)
	}

	interval := req.IntervalMinutes
	if interval <= 0 {
		interval = uc.dayInterval
		if req.TeamMemberID != nil {
			interval = uc.teamInterval
		}
	}

	// 2. Расчёт доступности
	availability, err := uc.calculator.ForRange(ctx, models.RangeQuery{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TeamMemberID:    req.TeamMemberID,
		RequiredMinutes: req.ServiceDurationMinutes,
		IntervalMinutes: interval,
	})
	if err != nil {
		if errors.Is(err, availabilitySvc.ErrInvalidRange) || errors.Is(err, availabilitySvc.ErrRangeTooLarge) {
			uc.logger.Warn("GenerateSlots: invalid range: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GenerateSlots: failed to compute range: %v", err)
		return nil, fmt.Errorf("%w: failed to compute range: %v", ErrInternal, err)
	}

	// 3. Строки кеша
	now := uc.timeProvider.Now()
	resp := &Response{Days: len(availability.Days)}
	rows := make([]domain.CachedSlot, 0)
	for _, day := range availability.Days {
		if day.Status == domain.DayClosed {
			continue
		}
		resp.OpenDays++
		for _, slot := range day.Slots {
			rows = append(rows, domain.CachedSlot{
				Date:         day.Date,
				TeamMemberID: req.TeamMemberID,
				StartTime:    slot.StartTime,
				EndTime:      slot.EndTime,
				IsAvailable:  slot.IsAvailable,
				GeneratedAt:  now,
			})
		}
	}

	// 4. Замена диапазона одной транзакцией
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		written, err := uc.slotRepo.ReplaceRange(txCtx, req.StartDate, req.EndDate, req.TeamMemberID, rows)
		if err != nil {
			return err
		}
		resp.SlotsWritten = written
		return nil
	})
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to replace slots: %v", err)
		return nil, fmt.Errorf("%w: failed to replace slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateSlots: written %d slots for %d open days of %d", resp.SlotsWritten, resp.OpenDays, resp.Days)
	return resp, nil
}

func teamMemberLog(id *int64) interface{} {
	if id == nil {
		return "any"
	}
	return *id
}
