package move_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64
	NewDate   time.Time
	NewTime   types.TimeString
}

// Response результат переноса
type Response struct {
	Booking *domain.Booking
	// Substituted запрошенное время было занято, выбран следующий свободный слот
	Substituted   bool
	RequestedTime types.TimeString
}
