package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// WorkingHours represents the clinic schedule for one weekday
// DayOfWeek: 0 = Sunday ... 6 = Saturday (как time.Weekday)
type WorkingHours struct {
	DayOfWeek       int
	IsWorkingDay    bool
	StartTime       types.TimeString
	EndTime         types.TimeString
	BufferMinutes   int
	MaxAppointments int // 0 = без ограничения
	UpdatedAt       time.Time
}

// IsOpen returns true if slots can be generated for this day
// Нерабочий день или start >= end считаются закрытыми
func (w *WorkingHours) IsOpen() bool {
	if w == nil || !w.IsWorkingDay {
		return false
	}
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return false
	}
	return w.StartTime.IsBefore(w.EndTime)
}

// IsValidDayOfWeek проверяет диапазон 0..6
func IsValidDayOfWeek(day int) bool {
	return day >= 0 && day <= 6
}
