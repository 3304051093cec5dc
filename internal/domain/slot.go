package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// DayStatus итоговый статус дня в выдаче доступности
type DayStatus string

const (
	DayClosed    DayStatus = "closed"
	DayFull      DayStatus = "full"
	DayAvailable DayStatus = "available"
)

// Slot represents a candidate time slot and its availability
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	BookedBy    *int64 // ID бронирования, которое перекрывает слот
}

// DayAvailability availability of one calendar day
type DayAvailability struct {
	Date         time.Time
	Status       DayStatus
	WorkingHours *WorkingHours // nil, если день закрыт
	Slots        []Slot
}

// AvailableStarts returns start times of free slots
func (d *DayAvailability) AvailableStarts() []types.TimeString {
	result := make([]types.TimeString, 0, len(d.Slots))
	for _, s := range d.Slots {
		if s.IsAvailable {
			result = append(result, s.StartTime)
		}
	}
	return result
}

// BookedStarts returns start times of slots overlapped by an existing booking
// Слоты, недоступные из-за конца дня или лимита записей, сюда не попадают
func (d *DayAvailability) BookedStarts() []types.TimeString {
	result := make([]types.TimeString, 0)
	for _, s := range d.Slots {
		if s.BookedBy != nil {
			result = append(result, s.StartTime)
		}
	}
	return result
}

// StatusFor вычисляет статус дня по набору слотов
func StatusFor(open bool, slots []Slot) DayStatus {
	if !open {
		return DayClosed
	}
	for _, s := range slots {
		if s.IsAvailable {
			return DayAvailable
		}
	}
	return DayFull
}

// CachedSlot materialized slot row of the availability_slots table
type CachedSlot struct {
	Date         time.Time
	TeamMemberID *int64
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsAvailable  bool
	GeneratedAt  time.Time
}
