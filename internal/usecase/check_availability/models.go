package check_availability

import "time"

// Request модель запроса проверки доступности
type Request struct {
	ItemID       int64     // ID товара каталога
	StartUseDate time.Time // Первый день использования
	EndUseDate   time.Time // Последний день использования
	Size         *string   // Требуемый размер экземпляра (опционально)
}

// Response модель ответа: доступность товара на запрошенный интервал
// Ответ носит рекомендательный характер: решает атомарное
// резервирование при создании брони
type Response struct {
	ItemID       int64
	StartUseDate time.Time
	EndUseDate   time.Time
	Available    bool
	FreeUnits    int
	TotalUnits   int
}
