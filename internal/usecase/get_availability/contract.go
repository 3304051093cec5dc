package get_availability

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability/models"
)

// AvailabilityService расчёт доступности
type AvailabilityService interface {
	ForDay(ctx context.Context, q models.DayQuery) (*domain.DayAvailability, error)
	ForRange(ctx context.Context, q models.RangeQuery) (*models.RangeAvailability, error)
}

// ServiceDurationRepository интерфейс репозитория длительностей услуг
type ServiceDurationRepository interface {
	GetByName(ctx context.Context, name string) (*domain.ServiceDuration, error)
}

// TeamMemberRepository интерфейс репозитория специалистов
type TeamMemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TeamMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
