package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date         time.Time        // Дата записи (без времени)
	StartTime    types.TimeString // Время начала, например "10:00"
	TeamMemberID *int64           // Специалист (опционально)
	ServiceName  string
	// ServiceDurationMinutes длительность процедуры
	// 0 - берётся из настроек услуги
	ServiceDurationMinutes int

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	Notes           *string
	PaymentIntentID *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Paid    bool // оплата подтверждена в stripe
}
