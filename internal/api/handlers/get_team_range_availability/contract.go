package get_team_range_availability

import (
	"context"

	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

type AvailabilityUseCase interface {
	TeamRange(ctx context.Context, req *getAvailability.RangeRequest) (*getAvailability.RangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
