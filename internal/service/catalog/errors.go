package catalog

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден
	ErrItemNotFound = errors.New("item not found")

	// ErrUnitNotFound возвращается, когда экземпляр не найден
	ErrUnitNotFound = errors.New("item unit not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog service: internal error")
)
