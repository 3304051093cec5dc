package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrClinicClosed возвращается, когда клиника не работает в указанную дату
	ErrClinicClosed = errors.New("create_booking: clinic is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда запись не помещается в рабочие часы
	ErrInvalidTimeSlot = errors.New("create_booking: time is outside working hours")

	// ErrDayFull возвращается, когда исчерпан лимит записей на день
	ErrDayFull = errors.New("create_booking: no more appointments for this day")

	// ErrTeamMemberNotFound возвращается, когда специалист не найден или неактивен
	ErrTeamMemberNotFound = errors.New("create_booking: team member not found")

	// ErrPaymentNotFound возвращается, когда указанный payment intent не найден
	ErrPaymentNotFound = errors.New("create_booking: payment not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
