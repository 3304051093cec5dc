package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// ErrInvalidDate возвращается при некорректной календарной дате
var ErrInvalidDate = errors.New("availability: invalid date")

// Weekday возвращает день недели 0 (воскресенье) .. 6 (суббота)
// День определяется по полудню UTC той же календарной даты,
// поэтому смещение часового пояса сервера не сдвигает день
func Weekday(date time.Time) int {
	y, m, d := date.Date()
	return int(time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Weekday())
}

// ParseDate парсит дату формата YYYY-MM-DD в полночь UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Dates возвращает все даты отрезка [start, end] включительно
func Dates(start, end time.Time) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return []time.Time{}
	}

	result := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		result = append(result, d)
	}
	return result
}

// DaysBetween количество дней от start до end (end - start)
func DaysBetween(start, end time.Time) int {
	return int(truncateDay(end).Sub(truncateDay(start)).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
