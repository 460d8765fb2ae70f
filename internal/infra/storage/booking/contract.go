package booking

import (
	"github.com/magiclook/ML-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics,
// под него подходят *sql.DB, *dbmetrics.DB и транзакция из контекста
type DBExecutor = dbmetrics.DBExecutor
