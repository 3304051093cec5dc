package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// WorkingHoursStore хранилище рабочих часов
type WorkingHoursStore interface {
	GetByDay(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByDate(ctx context.Context, date time.Time, teamMemberID *int64, includeCancelled bool) ([]*domain.Booking, error)
	ListByDateRange(ctx context.Context, start, end time.Time, teamMemberID *int64) ([]*domain.Booking, error)
}

// Metrics счётчик рассчитанных дней по статусу
type Metrics interface {
	ObserveDay(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
