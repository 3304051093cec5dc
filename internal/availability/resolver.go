package availability

import (
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Params параметры проверки конфликтов на один день
type Params struct {
	// RequiredMinutes длительность процедуры, которую хотят записать
	RequiredMinutes int
	// BufferMinutes буфер после каждой существующей записи
	BufferMinutes int
	// DayEnd конец рабочего дня, новая запись должна закончиться не позже
	DayEnd types.TimeString
	// MaxAppointments лимит записей на день, 0 = без ограничения
	MaxAppointments int
	// ExcludeBookingID бронирование, которое не учитывается (при переносе)
	ExcludeBookingID *int64
}

// occupied занятый интервал [start, end) в минутах от полуночи
type occupied struct {
	start     int
	end       int
	bookingID int64
}

// Resolve помечает кандидатов свободными или занятыми
// Каждая неотменённая запись занимает [start, start+duration+buffer)
// Кандидат t свободен, если t+required <= dayEnd и [t, t+required) не пересекает ни один занятый интервал
func Resolve(candidates []Candidate, bookings []*domain.Booking, p Params) ([]domain.Slot, error) {
	if p.RequiredMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	busy, err := occupiedIntervals(bookings, p)
	if err != nil {
		return nil, err
	}

	dayEnd := p.DayEnd.Minutes()
	limitReached := p.MaxAppointments > 0 && len(busy) >= p.MaxAppointments

	result := make([]domain.Slot, len(candidates))
	for i, c := range candidates {
		start := c.Start.Minutes()

		slot := domain.Slot{StartTime: c.Start, EndTime: c.End}
		bookedBy, conflict := firstOverlap(start, start+p.RequiredMinutes, busy)
		switch {
		case conflict:
			slot.BookedBy = &bookedBy
		case start+p.RequiredMinutes > dayEnd, limitReached:
			// не помещается до конца дня или лимит исчерпан
		default:
			slot.IsAvailable = true
		}

		result[i] = slot
	}

	return result, nil
}

// CheckSlot проверяет возможность записи на конкретное время
// Возвращает ErrOutsideWorkingHours, ErrDayLimitReached или domain.ErrSlotConflict
func CheckSlot(
	wh *domain.WorkingHours,
	startTime types.TimeString,
	bookings []*domain.Booking,
	p Params,
) error {
	if p.RequiredMinutes <= 0 {
		return ErrInvalidDuration
	}
	if !wh.IsOpen() {
		return ErrOutsideWorkingHours
	}

	start := startTime.Minutes()
	if start < 0 || start < wh.StartTime.Minutes() || start+p.RequiredMinutes > wh.EndTime.Minutes() {
		return ErrOutsideWorkingHours
	}

	busy, err := occupiedIntervals(bookings, p)
	if err != nil {
		return err
	}

	if _, conflict := firstOverlap(start, start+p.RequiredMinutes, busy); conflict {
		return domain.ErrSlotConflict
	}
	if p.MaxAppointments > 0 && len(busy) >= p.MaxAppointments {
		return ErrDayLimitReached
	}

	return nil
}

// occupiedIntervals строит занятые интервалы по неотменённым записям
func occupiedIntervals(bookings []*domain.Booking, p Params) ([]occupied, error) {
	result := make([]occupied, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.OccupiesSlot() {
			continue
		}
		if p.ExcludeBookingID != nil && b.ID == *p.ExcludeBookingID {
			continue
		}
		if b.ServiceDurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: booking id=%d", ErrBookingDurationMissing, b.ID)
		}

		start := b.StartTime.Minutes()
		if start < 0 {
			return nil, fmt.Errorf("%w: booking id=%d start=%q", types.ErrInvalidTimeString, b.ID, b.StartTime)
		}

		result = append(result, occupied{
			start:     start,
			end:       start + b.ServiceDurationMinutes + p.BufferMinutes,
			bookingID: b.ID,
		})
	}
	return result, nil
}

// firstOverlap ищет первую запись, пересекающуюся с [from, to)
// Касание границ (end == from) пересечением не считается
func firstOverlap(from, to int, busy []occupied) (int64, bool) {
	for _, o := range busy {
		if from < o.end && o.start < to {
			return o.bookingID, true
		}
	}
	return 0, false
}
