package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

func TestNewValidator_HHMM(t *testing.T) {
	var v = newValidator()
	require.NotNil(t, v)

	tests := []struct {
		name    string
		start   string
		wantErr bool
	}{
		{name: "пусто", start: ""},
		{name: "корректное время", start: "09:30"},
		{name: "часы вне диапазона", start: "25:00", wantErr: true},
		{name: "мусор", start: "nine", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&models.UpsertWorkingHoursRequest{DayOfWeek: 1, StartTime: tt.start})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
