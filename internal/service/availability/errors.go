package availability

import "errors"

var (
	// ErrInvalidRange возвращается, когда начало периода позже конца
	ErrInvalidRange = errors.New("start date is after end date")

	// ErrRangeTooLarge возвращается, когда период длиннее допустимого
	ErrRangeTooLarge = errors.New("date range is too large")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("service duration must be positive")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
