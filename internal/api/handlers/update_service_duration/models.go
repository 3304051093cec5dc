package update_service_duration

import "github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"

// UpdateServiceDurationRequest HTTP request model, имя услуги берётся из пути
type UpdateServiceDurationRequest struct {
	DurationMinutes int `json:"durationMinutes"`
	BufferMinutes   int `json:"bufferMinutes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateServiceDurationRequest) ToServiceRequest(serviceName string) *models.UpsertServiceDurationRequest {
	return &models.UpsertServiceDurationRequest{
		ServiceName:     serviceName,
		DurationMinutes: r.DurationMinutes,
		BufferMinutes:   r.BufferMinutes,
	}
}
