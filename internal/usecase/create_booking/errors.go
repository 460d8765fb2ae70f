package create_booking

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден в каталоге
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrInvalidDate возвращается при некорректных датах: даты не заданы,
	// конец раньше начала или начало использования не в будущем
	ErrInvalidDate = errors.New("create_booking: invalid booking dates")

	// ErrNoEligibleUnits возвращается, когда у товара нет ни одного
	// пригодного экземпляра нужного размера (пул пуст либо всё в чистке)
	ErrNoEligibleUnits = errors.New("create_booking: no eligible units for requested size")

	// ErrItemNotAvailable возвращается, когда каждый пригодный экземпляр
	// занят на запрошенный интервал, стоит выбрать другие даты
	ErrItemNotAvailable = errors.New("create_booking: item is not available for the requested dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// errUnitConflict внутренняя ошибка: все кандидаты пересеклись с существующими
// бронями внутри транзакции. Наружу не отдается, конвертируется
// в ErrItemNotAvailable
var errUnitConflict = errors.New("create_booking: all candidate units conflict")
