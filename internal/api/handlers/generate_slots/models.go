package generate_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/availability"
	generateSlots "github.com/m04kA/SMC-ClinicBooking/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate              string `json:"startDate"`
	EndDate                string `json:"endDate"`
	TeamMemberID           *int64 `json:"teamMemberId,omitempty"`
	ServiceDurationMinutes int    `json:"serviceDurationMinutes"`
	IntervalMinutes        int    `json:"intervalMinutes,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Days         int   `json:"days"`
	OpenDays     int   `json:"openDays"`
	SlotsWritten int64 `json:"slotsWritten"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest() (*generateSlots.Request, error) {
	start, err := availability.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := availability.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	return &generateSlots.Request{
		StartDate:              start,
		EndDate:                end,
		TeamMemberID:           r.TeamMemberID,
		ServiceDurationMinutes: r.ServiceDurationMinutes,
		IntervalMinutes:        r.IntervalMinutes,
	}, nil
}

func fromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		Days:         resp.Days,
		OpenDays:     resp.OpenDays,
		SlotsWritten: resp.SlotsWritten,
	}
}
