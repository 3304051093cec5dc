package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
)

// RangeCalculator расчёт доступности на период
type RangeCalculator interface {
	ForRange(ctx context.Context, q models.RangeQuery) (*models.RangeAvailability, error)
}

// SlotCacheRepository хранилище материализованных слотов
type SlotCacheRepository interface {
	ReplaceRange(ctx context.Context, start, end time.Time, teamMemberID *int64, slots []domain.CachedSlot) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
