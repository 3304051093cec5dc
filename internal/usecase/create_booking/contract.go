package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// DayLoader загружает рабочие часы и записи дня
type DayLoader interface {
	LoadDay(ctx context.Context, date time.Time, teamMemberID *int64) (*models.DaySchedule, error)
}

// ServiceDurationRepository интерфейс репозитория длительностей услуг
type ServiceDurationRepository interface {
	GetByName(ctx context.Context, name string) (*domain.ServiceDuration, error)
}

// TeamMemberRepository интерфейс репозитория специалистов
type TeamMemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TeamMember, error)
}

// PaymentClient интерфейс проверки оплаты
type PaymentClient interface {
	GetPayment(ctx context.Context, intentID string) (*payments.Payment, error)
}

// Notifier оповещения после создания записи
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
}

// Metrics счётчик конфликтов слотов
type Metrics interface {
	ObserveSlotConflict(operation string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
