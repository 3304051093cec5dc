package list_service_durations

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	ListServiceDurations(ctx context.Context) (*models.ServiceDurationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
