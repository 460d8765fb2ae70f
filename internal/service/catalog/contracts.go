package catalog

import (
	"context"

	"github.com/magiclook/ML-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetItemByID(ctx context.Context, id int64) (*domain.Item, error)
	GetUnitByID(ctx context.Context, id int64) (*domain.ItemUnit, error)
	UpdateUnitState(ctx context.Context, id int64, state domain.UnitState) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
