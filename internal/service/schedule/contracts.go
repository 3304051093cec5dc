package schedule

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// WorkingHoursStore хранилище рабочих часов
type WorkingHoursStore interface {
	GetAll(ctx context.Context) ([]*domain.WorkingHours, error)
	Upsert(ctx context.Context, wh *domain.WorkingHours) error
}

// Invalidator сброс кеша расписания дня (опционально реализуется хранилищем)
type Invalidator interface {
	Invalidate(ctx context.Context, dayOfWeek int)
}

// ServiceDurationRepository интерфейс репозитория длительностей услуг
type ServiceDurationRepository interface {
	List(ctx context.Context) ([]*domain.ServiceDuration, error)
	Upsert(ctx context.Context, sd *domain.ServiceDuration) (*domain.ServiceDuration, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
