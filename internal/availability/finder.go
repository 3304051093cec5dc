package availability

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// FindAlternative ищет первый свободный слот строго позже желаемого времени
// slots должны быть посчитаны Resolve с исключением переносимой записи
func FindAlternative(slots []domain.Slot, desired types.TimeString) (types.TimeString, bool) {
	desiredMin := desired.Minutes()
	for _, s := range slots {
		if s.StartTime.Minutes() <= desiredMin {
			continue
		}
		if s.IsAvailable {
			return s.StartTime, true
		}
	}
	return "", false
}

// IsAvailableAt проверяет, свободен ли слот с указанным началом
func IsAvailableAt(slots []domain.Slot, start types.TimeString) bool {
	startMin := start.Minutes()
	for _, s := range slots {
		if s.StartTime.Minutes() == startMin {
			return s.IsAvailable
		}
	}
	return false
}
