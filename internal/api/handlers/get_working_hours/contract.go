package get_working_hours

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWorkingHours(ctx context.Context) (*models.WorkingHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
