package get_team_range_availability

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

// DayResponse доступность одного дня периода
type DayResponse struct {
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
	Status         string   `json:"status"`
}

// RangeAvailabilityResponse HTTP response model, ключ - дата YYYY-MM-DD
type RangeAvailabilityResponse struct {
	TeamMemberID    int64                  `json:"teamMemberId"`
	DurationMinutes int                    `json:"durationMinutes"`
	Availability    map[string]DayResponse `json:"availability"`
}

func fromUseCaseResponse(teamMemberID int64, resp *getAvailability.RangeResponse) *RangeAvailabilityResponse {
	out := &RangeAvailabilityResponse{
		TeamMemberID:    teamMemberID,
		DurationMinutes: resp.DurationMinutes,
		Availability:    make(map[string]DayResponse, len(resp.Days)),
	}
	for _, day := range resp.Days {
		out.Availability[day.Date.Format(domain.DateFormat)] = DayResponse{
			AvailableSlots: handlers.FormatTimes(day.AvailableStarts()),
			BookedSlots:    handlers.FormatTimes(day.BookedStarts()),
			Status:         string(day.Status),
		}
	}
	return out
}
