package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// ErrSlotConflict базовая ошибка конфликта слота, для errors.Is
var ErrSlotConflict = errors.New("slot conflict")

// SlotConflictError слот уже занят другим бронированием
// Вызывающая сторона может повторить попытку с другим временем
type SlotConflictError struct {
	Date         time.Time
	StartTime    types.TimeString
	TeamMemberID *int64
	Cause        error
}

func (e *SlotConflictError) Error() string {
	team := "any"
	if e.TeamMemberID != nil {
		team = fmt.Sprintf("%d", *e.TeamMemberID)
	}
	msg := fmt.Sprintf("slot conflict: date=%s time=%s team_member=%s",
		e.Date.Format(DateFormat), e.StartTime, team)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

func (e *SlotConflictError) Unwrap() error {
	return e.Cause
}

// NewSlotConflict создаёт ошибку конфликта слота
func NewSlotConflict(date time.Time, start types.TimeString, teamMemberID *int64, cause error) *SlotConflictError {
	return &SlotConflictError{Date: date, StartTime: start, TeamMemberID: teamMemberID, Cause: cause}
}
