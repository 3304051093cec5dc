package get_team_availability

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

// WorkingHoursResponse рабочие часы дня
type WorkingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TeamAvailabilityResponse HTTP response model
// WorkingHours = nil, если день закрыт
type TeamAvailabilityResponse struct {
	TeamMemberID    int64                 `json:"teamMemberId"`
	Date            string                `json:"date"`
	Status          string                `json:"status"`
	DurationMinutes int                   `json:"durationMinutes"`
	AvailableSlots  []string              `json:"availableSlots"`
	BookedSlots     []string              `json:"bookedSlots"`
	WorkingHours    *WorkingHoursResponse `json:"workingHours"`
}

func fromUseCaseResponse(teamMemberID int64, resp *getAvailability.DayResponse) *TeamAvailabilityResponse {
	day := resp.Day
	out := &TeamAvailabilityResponse{
		TeamMemberID:    teamMemberID,
		Date:            day.Date.Format(domain.DateFormat),
		Status:          string(day.Status),
		DurationMinutes: resp.DurationMinutes,
		AvailableSlots:  handlers.FormatTimes(day.AvailableStarts()),
		BookedSlots:     handlers.FormatTimes(day.BookedStarts()),
	}
	if day.WorkingHours != nil {
		out.WorkingHours = &WorkingHoursResponse{
			Start: day.WorkingHours.StartTime.String(),
			End:   day.WorkingHours.EndTime.String(),
		}
	}
	return out
}
