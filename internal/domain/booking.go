package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusScheduled BookingStatus = "scheduled"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents an appointment at the clinic
type Booking struct {
	ID                     int64
	Date                   time.Time
	StartTime              types.TimeString
	TeamMemberID           *int64 // NULL = любой специалист клиники
	ServiceName            string
	ServiceDurationMinutes int
	Status                 BookingStatus

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	Notes           *string
	PaymentIntentID *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the booking blocks its time range
// Отменённое бронирование никогда не занимает слот
func (b *Booking) OccupiesSlot() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if the booking can no longer change
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeMoved returns true if the booking can be rescheduled
func (b *Booking) CanBeMoved() bool {
	return !b.IsTerminal()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// EndTime returns the booking end time without buffer
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.ServiceDurationMinutes)
}

// IsValidStatus проверяет, что статус входит в допустимый набор
func IsValidStatus(status BookingStatus) bool {
	for _, s := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate        time.Time // Обязательный параметр
	EndDate          time.Time // Обязательный параметр, включительно
	TeamMemberID     *int64    // nil - все специалисты
	IncludeCancelled bool
}

// IsSingleDay returns true if the filter covers exactly one date
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate.Equal(f.EndDate)
}
