package update_service_duration

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertServiceDuration(ctx context.Context, req *models.UpsertServiceDurationRequest) (*models.ServiceDurationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
