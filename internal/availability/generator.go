// Package availability вычисляет свободные слоты по рабочим часам и бронированиям.
// Все функции чистые: без обращений к БД и без зависимости от текущего времени.
package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

var (
	// ErrInvalidInterval возвращается при неположительном шаге генерации
	ErrInvalidInterval = errors.New("availability: interval must be positive")

	// ErrInvalidDuration возвращается при неположительной требуемой длительности
	ErrInvalidDuration = errors.New("availability: required duration must be positive")

	// ErrBookingDurationMissing возвращается, если у бронирования не указана длительность
	ErrBookingDurationMissing = errors.New("availability: booking has no duration")

	// ErrOutsideWorkingHours возвращается, если слот не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("availability: slot is outside working hours")

	// ErrDayLimitReached возвращается, когда исчерпан лимит записей на день
	ErrDayLimitReached = errors.New("availability: max appointments per day reached")
)

// Candidate кандидат в слоты: [Start, End)
type Candidate struct {
	Start types.TimeString
	End   types.TimeString
}

// Generate генерирует слоты с фиксированным шагом от начала до конца рабочего дня
// Хвостовой неполный слот не выдаётся. Закрытый день - пустой результат
func Generate(wh *domain.WorkingHours, intervalMinutes int) ([]Candidate, error) {
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}
	if !wh.IsOpen() {
		return []Candidate{}, nil
	}

	start := wh.StartTime.Minutes()
	end := wh.EndTime.Minutes()

	result := make([]Candidate, 0, (end-start)/intervalMinutes)
	for cursor := start; cursor+intervalMinutes <= end; cursor += intervalMinutes {
		from, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			return nil, fmt.Errorf("generate slot start: %w", err)
		}
		to, err := types.NewTimeStringFromMinutes(cursor + intervalMinutes)
		if err != nil {
			return nil, fmt.Errorf("generate slot end: %w", err)
		}
		result = append(result, Candidate{Start: from, End: to})
	}

	return result, nil
}
