package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64     // ID пользователя (из слоя аутентификации)
	ItemID       int64     // ID товара каталога
	StartUseDate time.Time // Первый день использования
	EndUseDate   time.Time // Последний день использования
	Size         *string   // Требуемый размер экземпляра (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID     int64  // ID созданного бронирования
	UserID int64  // ID пользователя
	ItemID int64  // ID товара
	UnitID int64  // ID зарезервированного экземпляра

	PickupDate   time.Time // Дата выдачи (выводится политикой)
	StartUseDate time.Time // Первый день использования
	EndUseDate   time.Time // Последний день использования
	ReturnDate   time.Time // Дата возврата (выводится политикой)

	TotalDays  int     // Число дней использования, обе границы включительно
	TotalPrice float64 // Полная стоимость аренды
	Status     string  // Сохраненный статус (CONFIRMED)

	// Денормализованные данные
	ItemName string // Название товара
	UnitSize string // Размер экземпляра

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
