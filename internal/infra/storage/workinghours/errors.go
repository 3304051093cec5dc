package workinghours

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда для дня недели нет расписания
	ErrWorkingHoursNotFound = errors.New("workinghours.repository: working hours not found")

	// ErrInvalidSettings возвращается, когда значение в settings не разбирается
	ErrInvalidSettings = errors.New("workinghours.repository: invalid settings value")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workinghours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workinghours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workinghours.repository: failed to scan row")
)
