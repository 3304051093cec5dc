package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

func TestDayAvailability_BookedStarts(t *testing.T) {
	bookingID := int64(5)
	day := &DayAvailability{
		Status: DayAvailable,
		Slots: []Slot{
			{StartTime: "09:00", EndTime: "09:30", IsAvailable: true},
			{StartTime: "09:30", EndTime: "10:00", BookedBy: &bookingID},
			// лимит записей на день
			{StartTime: "10:00", EndTime: "10:30"},
			// не помещается до конца дня
			{StartTime: "17:30", EndTime: "18:00"},
		},
	}

	assert.Equal(t, []types.TimeString{"09:30"}, day.BookedStarts())
	assert.Equal(t, []types.TimeString{"09:00"}, day.AvailableStarts())
}

func TestStatusFor(t *testing.T) {
	free := []Slot{{StartTime: "09:00", IsAvailable: true}}
	taken := []Slot{{StartTime: "09:00"}}

	assert.Equal(t, DayClosed, StatusFor(false, free))
	assert.Equal(t, DayAvailable, StatusFor(true, free))
	assert.Equal(t, DayFull, StatusFor(true, taken))
	assert.Equal(t, DayFull, StatusFor(true, nil))
}
