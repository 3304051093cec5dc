package get_availability

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

// SlotResponse слот сетки дня
type SlotResponse struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// DayAvailabilityResponse HTTP response model
type DayAvailabilityResponse struct {
	Date            string         `json:"date"`
	Status          string         `json:"status"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
	BookedSlots     []string       `json:"bookedSlots"`
}

func fromUseCaseResponse(resp *getAvailability.DayResponse) *DayAvailabilityResponse {
	day := resp.Day
	out := &DayAvailabilityResponse{
		Date:            day.Date.Format(domain.DateFormat),
		Status:          string(day.Status),
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, 0, len(day.Slots)),
		BookedSlots:     handlers.FormatTimes(day.BookedStarts()),
	}
	for _, s := range day.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			IsAvailable: s.IsAvailable,
		})
	}
	return out
}
