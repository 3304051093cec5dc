package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// DayRequest доступность клиники на день
type DayRequest struct {
	Date                   time.Time
	ServiceName            string // пусто - буфер рабочего дня
	ServiceDurationMinutes int    // 0 - длительность услуги, иначе шаг сетки
}

// TeamDayRequest доступность специалиста на день
type TeamDayRequest struct {
	TeamMemberID           int64
	Date                   time.Time
	ServiceName            string
	ServiceDurationMinutes int
}

// RangeRequest доступность специалиста за период включительно
type RangeRequest struct {
	TeamMemberID           int64
	StartDate              time.Time
	EndDate                time.Time
	ServiceName            string
	ServiceDurationMinutes int
}

// DayResponse результат расчёта одного дня
type DayResponse struct {
	Day             *domain.DayAvailability
	DurationMinutes int
	IntervalMinutes int
}

// RangeResponse результат расчёта периода, дни в порядке дат
type RangeResponse struct {
	Days            []*domain.DayAvailability
	DurationMinutes int
	IntervalMinutes int
}
