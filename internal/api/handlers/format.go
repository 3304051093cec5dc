package handlers

import "github.com/m04kA/SMC-ClinicBooking/pkg/types"

// FormatTimes переводит список времени в строки "HH:MM", пустой список не nil
func FormatTimes(ts []types.TimeString) []string {
	result := make([]string, 0, len(ts))
	for _, t := range ts {
		result = append(result, t.String())
	}
	return result
}
