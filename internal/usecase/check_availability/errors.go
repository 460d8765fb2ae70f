package check_availability

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден в каталоге
	ErrItemNotFound = errors.New("check_availability: item not found")

	// ErrInvalidDate возвращается при некорректных датах запроса
	ErrInvalidDate = errors.New("check_availability: invalid dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
