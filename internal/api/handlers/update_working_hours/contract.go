package update_working_hours

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertWorkingHours(ctx context.Context, req *models.UpsertWorkingHoursRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
