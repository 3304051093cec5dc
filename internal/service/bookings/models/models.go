package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest запрос на получение записей за дату
type ListBookingsRequest struct {
	Date             time.Time
	TeamMemberID     *int64 // nil - все специалисты
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	return domain.BookingsFilter{
		StartDate:        r.Date,
		EndDate:          r.Date,
		TeamMemberID:     r.TeamMemberID,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                     int64   `json:"id"`
	Date                   string  `json:"date"` // "2025-10-15"
	Time                   string  `json:"time"` // "10:00"
	EndTime                string  `json:"endTime,omitempty"`
	TeamMemberID           *int64  `json:"teamMemberId,omitempty"`
	ServiceName            string  `json:"serviceName"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`
	Status                 string  `json:"status"`
	CustomerName           string  `json:"customerName"`
	CustomerEmail          string  `json:"customerEmail"`
	CustomerPhone          *string `json:"customerPhone,omitempty"`
	Notes                  *string `json:"notes,omitempty"`
	PaymentIntentID        *string `json:"paymentIntentId,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                     b.ID,
		Date:                   b.Date.Format(domain.DateFormat),
		Time:                   b.StartTime.String(),
		TeamMemberID:           b.TeamMemberID,
		ServiceName:            b.ServiceName,
		ServiceDurationMinutes: b.ServiceDurationMinutes,
		Status:                 string(b.Status),
		CustomerName:           b.CustomerName,
		CustomerEmail:          b.CustomerEmail,
		CustomerPhone:          b.CustomerPhone,
		Notes:                  b.Notes,
		PaymentIntentID:        b.PaymentIntentID,
		CancellationReason:     b.CancellationReason,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
