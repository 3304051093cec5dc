package move_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
}

// DayCalculator загрузка и расчёт доступности дня
type DayCalculator interface {
	LoadDay(ctx context.Context, date time.Time, teamMemberID *int64) (*models.DaySchedule, error)
	Compute(schedule *models.DaySchedule, q models.DayQuery) (*domain.DayAvailability, error)
}

// ServiceDurationRepository интерфейс репозитория длительностей услуг
type ServiceDurationRepository interface {
	GetByName(ctx context.Context, name string) (*domain.ServiceDuration, error)
}

// Notifier оповещения после переноса записи
type Notifier interface {
	BookingMoved(ctx context.Context, b *domain.Booking)
}

// Metrics счётчик конфликтов слотов
type Metrics interface {
	ObserveSlotConflict(operation string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
