package generate_slots

import "time"

// Request период для материализации слотов
type Request struct {
	StartDate              time.Time
	EndDate                time.Time
	TeamMemberID           *int64
	ServiceDurationMinutes int
	IntervalMinutes        int // 0 - шаг из настроек для клиники или специалиста
}

// Response итог материализации
type Response struct {
	Days         int
	OpenDays     int
	SlotsWritten int64
}
