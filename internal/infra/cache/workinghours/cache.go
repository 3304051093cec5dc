// Package workinghours read-through кеш рабочих часов в redis.
// Ошибки redis не ломают чтение: запрос уходит в хранилище.
package workinghours

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const keyPrefix = "clinic:working_hours:"

type cachedDay struct {
	DayOfWeek       int    `json:"day_of_week"`
	IsWorkingDay    bool   `json:"is_working_day"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	BufferMinutes   int    `json:"buffer_minutes"`
	MaxAppointments int    `json:"max_appointments"`
}

// Cache декоратор Store с кешированием GetByDay
type Cache struct {
	store  Store
	client Client
	ttl    time.Duration
	logger Logger
}

// New создает кеш поверх хранилища
func New(store Store, client Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByDay возвращает расписание дня из redis или из хранилища
// Отсутствие расписания не кешируется
func (c *Cache) GetByDay(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error) {
	key := dayKey(dayOfWeek)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		wh, decodeErr := decode(raw)
		if decodeErr == nil {
			return wh, nil
		}
		c.logger.Warn("WorkingHoursCache: failed to decode key=%s: %v", key, decodeErr)
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.logger.Warn("WorkingHoursCache: get key=%s failed: %v", key, err)
	}

	wh, err := c.store.GetByDay(ctx, dayOfWeek)
	if err != nil {
		return nil, err
	}

	encoded, err := encode(wh)
	if err != nil {
		c.logger.Warn("WorkingHoursCache: failed to encode day=%d: %v", dayOfWeek, err)
		return wh, nil
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("WorkingHoursCache: set key=%s failed: %v", key, err)
	}

	return wh, nil
}

// GetAll не кешируется, используется только в админке
func (c *Cache) GetAll(ctx context.Context) ([]*domain.WorkingHours, error) {
	return c.store.GetAll(ctx)
}

// Upsert сохраняет расписание и сбрасывает ключ дня
func (c *Cache) Upsert(ctx context.Context, wh *domain.WorkingHours) error {
	if err := c.store.Upsert(ctx, wh); err != nil {
		return err
	}
	c.Invalidate(ctx, wh.DayOfWeek)
	return nil
}

// Invalidate удаляет закешированное расписание дня
func (c *Cache) Invalidate(ctx context.Context, dayOfWeek int) {
	if err := c.client.Del(ctx, dayKey(dayOfWeek)).Err(); err != nil {
		c.logger.Warn("WorkingHoursCache: del day=%d failed: %v", dayOfWeek, err)
	}
}

func dayKey(dayOfWeek int) string {
	return fmt.Sprintf("%s%d", keyPrefix, dayOfWeek)
}

func encode(wh *domain.WorkingHours) ([]byte, error) {
	return json.Marshal(cachedDay{
		DayOfWeek:       wh.DayOfWeek,
		IsWorkingDay:    wh.IsWorkingDay,
		StartTime:       wh.StartTime.String(),
		EndTime:         wh.EndTime.String(),
		BufferMinutes:   wh.BufferMinutes,
		MaxAppointments: wh.MaxAppointments,
	})
}

func decode(raw []byte) (*domain.WorkingHours, error) {
	var d cachedDay
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &domain.WorkingHours{
		DayOfWeek:       d.DayOfWeek,
		IsWorkingDay:    d.IsWorkingDay,
		StartTime:       types.TimeString(d.StartTime),
		EndTime:         types.TimeString(d.EndTime),
		BufferMinutes:   d.BufferMinutes,
		MaxAppointments: d.MaxAppointments,
	}, nil
}
