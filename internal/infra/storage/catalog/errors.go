package catalog

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден в каталоге
	ErrItemNotFound = errors.New("catalog.repository: item not found")

	// ErrUnitNotFound возвращается, когда экземпляр не найден
	ErrUnitNotFound = errors.New("catalog.repository: item unit not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
