package move_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_booking: invalid input data")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("move_booking: invalid date")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("move_booking: booking not found")

	// ErrNotMovable возвращается для отменённых и завершённых записей
	ErrNotMovable = errors.New("move_booking: booking cannot be moved")

	// ErrClinicClosed возвращается, когда клиника не работает в новую дату
	ErrClinicClosed = errors.New("move_booking: clinic is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда запись не помещается в рабочие часы
	ErrInvalidTimeSlot = errors.New("move_booking: time is outside working hours")

	// ErrDayFull возвращается, когда исчерпан лимит записей на день
	ErrDayFull = errors.New("move_booking: no more appointments for this day")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_booking: internal error")
)
