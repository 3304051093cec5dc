package slotcache

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/generate_slots"
)

// Generator материализация слотов за период
type Generator interface {
	Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job периодический пересчёт кеша слотов на ближайшие дни
type Job struct {
	cron      *cron.Cron
	generator Generator
	logger    Logger
	daysAhead int
	duration  int
	timeout   time.Duration
	now       func() time.Time
}

// New создаёт задачу с расписанием в формате cron (5 полей)
func New(schedule string, generator Generator, logger Logger, daysAhead, durationMinutes int) (*Job, error) {
	j := &Job{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		generator: generator,
		logger:    logger,
		daysAhead: daysAhead,
		duration:  durationMinutes,
		timeout:   5 * time.Minute,
		now:       time.Now,
	}

	if _, err := j.cron.AddFunc(schedule, j.Run); err != nil {
		return nil, fmt.Errorf("slotcache: invalid schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start запускает планировщик в фоне
func (j *Job) Start() {
	j.logger.Info("SlotCacheJob: started, days_ahead=%d", j.daysAhead)
	j.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущего запуска
func (j *Job) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("SlotCacheJob: stopped")
}

// Run один пересчёт: с сегодняшнего дня на daysAhead дней
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	y, m, d := j.now().UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, j.daysAhead-1)

	resp, err := j.generator.Execute(ctx, &generate_slots.Request{
		StartDate:              start,
		EndDate:                end,
		ServiceDurationMinutes: j.duration,
	})
	if err != nil {
		j.logger.Error("SlotCacheJob: run failed: %v", err)
		return
	}
	j.logger.Info("SlotCacheJob: written %d slots for %d days", resp.SlotsWritten, resp.Days)
}
