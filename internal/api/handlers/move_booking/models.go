package move_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
	moveBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/move_booking"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// MoveBookingRequest HTTP request model
type MoveBookingRequest struct {
	NewDate string `json:"newDate"` // "2025-10-15"
	NewTime string `json:"newTime"` // "10:00"
}

// MoveBookingResponse HTTP response model
// При подстановке Message называет фактическое время записи
type MoveBookingResponse struct {
	Booking       *models.BookingResponse `json:"booking"`
	Substituted   bool                    `json:"substituted"`
	RequestedTime string                  `json:"requestedTime"`
	Message       string                  `json:"message"`
}

func (r *MoveBookingRequest) toUseCaseRequest(bookingID int64) (*moveBooking.Request, string, error) {
	date, err := availability.ParseDate(strings.TrimSpace(r.NewDate))
	if err != nil {
		return nil, msgInvalidDate, err
	}
	start, err := types.NewTimeStringFromString(strings.TrimSpace(r.NewTime))
	if err != nil {
		return nil, msgInvalidTime, err
	}
	return &moveBooking.Request{BookingID: bookingID, NewDate: date, NewTime: start}, "", nil
}

func fromUseCaseResponse(resp *moveBooking.Response) *MoveBookingResponse {
	booking := models.FromDomainBooking(resp.Booking)
	out := &MoveBookingResponse{
		Booking:       booking,
		Substituted:   resp.Substituted,
		RequestedTime: resp.RequestedTime.String(),
		Message:       fmt.Sprintf("бронирование перенесено на %s %s", booking.Date, booking.Time),
	}
	if resp.Substituted {
		out.Message = fmt.Sprintf("время %s занято, бронирование перенесено на ближайшее свободное время %s %s",
			resp.RequestedTime, booking.Date, booking.Time)
	}
	return out
}
