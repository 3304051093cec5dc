package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date                   string  `json:"date"` // "2025-10-15"
	Time                   string  `json:"time"` // "10:00"
	TeamMemberID           *int64  `json:"teamMemberId,omitempty"`
	ServiceName            string  `json:"serviceName"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes,omitempty"`
	CustomerName           string  `json:"customerName"`
	CustomerEmail          string  `json:"customerEmail"`
	CustomerPhone          *string `json:"customerPhone,omitempty"`
	Notes                  *string `json:"notes,omitempty"`
	PaymentIntentID        *string `json:"paymentIntentId,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	*models.BookingResponse
	Paid bool `json:"paid"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := availability.ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(strings.TrimSpace(r.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Date:                   date,
		StartTime:              startTime,
		TeamMemberID:           r.TeamMemberID,
		ServiceName:            r.ServiceName,
		ServiceDurationMinutes: r.ServiceDurationMinutes,
		CustomerName:           r.CustomerName,
		CustomerEmail:          r.CustomerEmail,
		CustomerPhone:          r.CustomerPhone,
		Notes:                  r.Notes,
		PaymentIntentID:        r.PaymentIntentID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking),
		Paid:            resp.Paid,
	}
}
