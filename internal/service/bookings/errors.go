package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено:
	// использование уже началось либо бронь в терминальном состоянии
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotReturn возвращается при попытке отметить возврат брони,
	// которая отменена или уже возвращена
	ErrCannotReturn = errors.New("booking cannot be marked as returned")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
