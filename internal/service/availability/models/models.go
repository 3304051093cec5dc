package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// DayQuery параметры расчёта доступности на один день
type DayQuery struct {
	Date            time.Time
	TeamMemberID    *int64 // nil - клиника целиком
	RequiredMinutes int
	IntervalMinutes int
	// BufferMinutes буфер конкретной услуги, перекрывает буфер рабочего дня
	BufferMinutes *int
	// ExcludeBookingID не учитывать запись (перенос)
	ExcludeBookingID *int64
}

// RangeQuery параметры расчёта доступности за период
type RangeQuery struct {
	StartDate       time.Time
	EndDate         time.Time
	TeamMemberID    *int64
	RequiredMinutes int
	IntervalMinutes int
	BufferMinutes   *int
}

// DaySchedule рабочие часы и записи дня
// WorkingHours = nil, если день закрыт или расписание не удалось получить
type DaySchedule struct {
	Date         time.Time
	WorkingHours *domain.WorkingHours
	Bookings     []*domain.Booking
}

// RangeAvailability доступность по дням, в порядке дат
type RangeAvailability struct {
	Days []*domain.DayAvailability
}

// ByDate индексирует дни по дате YYYY-MM-DD
func (r *RangeAvailability) ByDate() map[string]*domain.DayAvailability {
	result := make(map[string]*domain.DayAvailability, len(r.Days))
	for _, d := range r.Days {
		result[d.Date.Format(domain.DateFormat)] = d
	}
	return result
}
