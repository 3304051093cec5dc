package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Request модели

// UpsertWorkingHoursRequest расписание одного дня недели
// Для рабочего дня время начала и окончания обязательны
type UpsertWorkingHoursRequest struct {
	DayOfWeek       int    `json:"dayOfWeek" validate:"min=0,max=6"`
	IsWorkingDay    bool   `json:"isWorkingDay"`
	StartTime       string `json:"startTime" validate:"omitempty,hhmm"`
	EndTime         string `json:"endTime" validate:"omitempty,hhmm"`
	BufferMinutes   int    `json:"bufferMinutes" validate:"min=0,max=240"`
	MaxAppointments int    `json:"maxAppointments" validate:"min=0"`
}

// ToDomain конвертирует запрос в domain модель
func (r *UpsertWorkingHoursRequest) ToDomain() *domain.WorkingHours {
	wh := &domain.WorkingHours{
		DayOfWeek:       r.DayOfWeek,
		IsWorkingDay:    r.IsWorkingDay,
		BufferMinutes:   r.BufferMinutes,
		MaxAppointments: r.MaxAppointments,
	}
	if start, err := types.NewTimeStringFromString(r.StartTime); err == nil {
		wh.StartTime = start
	}
	if end, err := types.NewTimeStringFromString(r.EndTime); err == nil {
		wh.EndTime = end
	}
	return wh
}

// UpsertServiceDurationRequest длительность и буфер услуги
type UpsertServiceDurationRequest struct {
	ServiceName     string `json:"serviceName" validate:"required,max=200"`
	DurationMinutes int    `json:"durationMinutes" validate:"min=5,max=480"`
	BufferMinutes   int    `json:"bufferMinutes" validate:"min=0,max=240"`
}

// ToDomain конвертирует запрос в domain модель
func (r *UpsertServiceDurationRequest) ToDomain() *domain.ServiceDuration {
	return &domain.ServiceDuration{
		ServiceName:     r.ServiceName,
		DurationMinutes: r.DurationMinutes,
		BufferMinutes:   r.BufferMinutes,
	}
}

// Response модели

// WorkingHoursResponse расписание дня недели
type WorkingHoursResponse struct {
	DayOfWeek       int        `json:"dayOfWeek"`
	IsWorkingDay    bool       `json:"isWorkingDay"`
	StartTime       string     `json:"startTime,omitempty"`
	EndTime         string     `json:"endTime,omitempty"`
	BufferMinutes   int        `json:"bufferMinutes"`
	MaxAppointments int        `json:"maxAppointments"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// WorkingHoursListResponse расписание на неделю
type WorkingHoursListResponse struct {
	WorkingHours []WorkingHoursResponse `json:"workingHours"`
}

// ServiceDurationResponse настройки услуги
type ServiceDurationResponse struct {
	ServiceName     string    `json:"serviceName"`
	DurationMinutes int       `json:"durationMinutes"`
	BufferMinutes   int       `json:"bufferMinutes"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceDurationListResponse список настроек услуг
type ServiceDurationListResponse struct {
	ServiceDurations []ServiceDurationResponse `json:"serviceDurations"`
}

// Методы конвертации

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(wh *domain.WorkingHours) WorkingHoursResponse {
	resp := WorkingHoursResponse{
		DayOfWeek:       wh.DayOfWeek,
		IsWorkingDay:    wh.IsWorkingDay,
		StartTime:       wh.StartTime.String(),
		EndTime:         wh.EndTime.String(),
		BufferMinutes:   wh.BufferMinutes,
		MaxAppointments: wh.MaxAppointments,
	}
	if !wh.UpdatedAt.IsZero() {
		updated := wh.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// FromDomainServiceDuration конвертирует domain модель в DTO
func FromDomainServiceDuration(sd *domain.ServiceDuration) ServiceDurationResponse {
	return ServiceDurationResponse{
		ServiceName:     sd.ServiceName,
		DurationMinutes: sd.DurationMinutes,
		BufferMinutes:   sd.BufferMinutes,
		UpdatedAt:       sd.UpdatedAt,
	}
}
