package domain

import "time"

// ServiceDuration overrides the generic buffer for a specific service
type ServiceDuration struct {
	ServiceName     string
	DurationMinutes int
	BufferMinutes   int
	UpdatedAt       time.Time
}

// TeamMember represents a clinic specialist
// Удаление специалиста не удаляет его бронирования (team_member_id обнуляется)
type TeamMember struct {
	ID       int64
	Name     string
	Role     string
	IsActive bool
}
