package move_booking

import (
	"fmt"
	"time"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}
	if req.NewTime.IsZero() {
		return fmt.Errorf("%w: newTime is required", ErrInvalidInput)
	}
	if err := req.NewTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

func isDateInPast(date time.Time, now time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	by, bm, bd := date.Date()
	return time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC).Before(today)
}
