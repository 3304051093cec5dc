package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

func validateDate(name string, date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes == 0 {
		return nil
	}
	if minutes < domain.MinServiceDurationMinutes || minutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service_duration_minutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}

func validateTeamMemberID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: team_member_id must be positive", ErrInvalidInput)
	}
	return nil
}
