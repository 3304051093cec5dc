package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrServiceNotFound возвращается, когда для услуги не задана длительность
	ErrServiceNotFound = errors.New("service not found")

	// ErrTeamMemberNotFound возвращается, когда специалист не найден или неактивен
	ErrTeamMemberNotFound = errors.New("team member not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
