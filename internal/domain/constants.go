package domain

// Availability defaults
const (
	DefaultDayIntervalMinutes  = 30
	DefaultTeamIntervalMinutes = 15
	DefaultMaxRangeDays        = 62
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 240
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses список всех допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusScheduled,
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses статусы, в которых бронирование занимает слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusScheduled,
	StatusCompleted,
}
