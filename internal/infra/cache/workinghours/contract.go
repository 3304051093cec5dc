package workinghours

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Store хранилище рабочих часов, которое оборачивает кеш
type Store interface {
	GetByDay(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error)
	GetAll(ctx context.Context) ([]*domain.WorkingHours, error)
	Upsert(ctx context.Context, wh *domain.WorkingHours) error
}

// Client подмножество команд redis, которые использует кеш
// *redis.Client удовлетворяет интерфейсу
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
