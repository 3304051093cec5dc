package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

// Service настройка расписания клиники и длительностей услуг
type Service struct {
	hours     WorkingHoursStore
	durations ServiceDurationRepository
	txManager TransactionManager
	validate  *validator.Validate
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	hours WorkingHoursStore,
	durations ServiceDurationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		hours:     hours,
		durations: durations,
		txManager: txManager,
		validate:  newValidator(),
		logger:    logger,
	}
}

// GetWorkingHours возвращает расписание на все заданные дни недели
func (s *Service) GetWorkingHours(ctx context.Context) (*models.WorkingHoursListResponse, error) {
	s.logger.Info("GetWorkingHours: fetching schedule")

	all, err := s.hours.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetWorkingHours: store error: %v", err)
		return nil, fmt.Errorf("%w: GetWorkingHours - store error: %v", ErrInternal, err)
	}

	resp := &models.WorkingHoursListResponse{WorkingHours: make([]models.WorkingHoursResponse, 0, len(all))}
	for _, wh := range all {
		resp.WorkingHours = append(resp.WorkingHours, models.FromDomainWorkingHours(wh))
	}
	return resp, nil
}

// UpsertWorkingHours сохраняет расписание дня недели
func (s *Service) UpsertWorkingHours(ctx context.Context, req *models.UpsertWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpsertWorkingHours: day=%d working=%t %s-%s buffer=%d max=%d",
		req.DayOfWeek, req.IsWorkingDay, req.StartTime, req.EndTime, req.BufferMinutes, req.MaxAppointments)

	// 1. Валидация
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpsertWorkingHours: validation failed: %v", err)
		return nil, validationError(err)
	}
	wh := req.ToDomain()
	if wh.IsWorkingDay && (wh.StartTime.IsZero() || wh.EndTime.IsZero()) {
		s.logger.Warn("UpsertWorkingHours: working day=%d without hours", wh.DayOfWeek)
		return nil, fmt.Errorf("%w: startTime and endTime are required for a working day", ErrInvalidInput)
	}
	if wh.IsWorkingDay && !wh.StartTime.IsBefore(wh.EndTime) {
		s.logger.Warn("UpsertWorkingHours: start %s is not before end %s", wh.StartTime, wh.EndTime)
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	// 2. settings и строка таблицы меняются вместе
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.hours.Upsert(txCtx, wh)
	})
	if err != nil {
		s.logger.Error("UpsertWorkingHours: store error for day=%d: %v", wh.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertWorkingHours - store error: %v", ErrInternal, err)
	}

	// 3. Повторный сброс кеша после фиксации
	if inv, ok := s.hours.(Invalidator); ok {
		inv.Invalidate(ctx, wh.DayOfWeek)
	}

	s.logger.Info("UpsertWorkingHours: saved day=%d", wh.DayOfWeek)
	resp := models.FromDomainWorkingHours(wh)
	return &resp, nil
}

// ListServiceDurations возвращает настройки всех услуг
func (s *Service) ListServiceDurations(ctx context.Context) (*models.ServiceDurationListResponse, error) {
	items, err := s.durations.List(ctx)
	if err != nil {
		s.logger.Error("ListServiceDurations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServiceDurations - repository error: %v", ErrInternal, err)
	}

	resp := &models.ServiceDurationListResponse{ServiceDurations: make([]models.ServiceDurationResponse, 0, len(items))}
	for _, sd := range items {
		resp.ServiceDurations = append(resp.ServiceDurations, models.FromDomainServiceDuration(sd))
	}
	return resp, nil
}

// UpsertServiceDuration сохраняет длительность и буфер услуги
func (s *Service) UpsertServiceDuration(ctx context.Context, req *models.UpsertServiceDurationRequest) (*models.ServiceDurationResponse, error) {
	req.ServiceName = strings.TrimSpace(req.ServiceName)
	s.logger.Info("UpsertServiceDuration: service=%q duration=%d buffer=%d",
		req.ServiceName, req.DurationMinutes, req.BufferMinutes)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpsertServiceDuration: validation failed: %v", err)
		return nil, validationError(err)
	}

	saved, err := s.durations.Upsert(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("UpsertServiceDuration: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertServiceDuration - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainServiceDuration(saved)
	return &resp, nil
}
