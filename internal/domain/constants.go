package domain

// Default schedule policy values
// Выдача накануне первого дня использования, возврат на следующий день
// после последнего, затем день на чистку
const (
	DefaultPickupLeadDays  = 1
	DefaultReturnSlackDays = 1
	DefaultLaundryDays     = 1
)

// Business validation constants
const (
	MinUseDays = 1
	MaxUseDays = 60 // максимальный срок аренды, два месяца
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Sizes допустимые размеры физических экземпляров
var Sizes = []string{"XS", "S", "M", "L", "XL"}

// IsValidSize возвращает true для известного размера
func IsValidSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}
