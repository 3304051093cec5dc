package serviceduration

import "errors"

var (
	// ErrServiceDurationNotFound возвращается, когда для услуги не задана длительность
	ErrServiceDurationNotFound = errors.New("serviceduration.repository: service duration not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("serviceduration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("serviceduration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("serviceduration.repository: failed to scan row")
)
