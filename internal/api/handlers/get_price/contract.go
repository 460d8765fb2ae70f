package get_price

import (
	"context"

	"github.com/magiclook/ML-BookingService/internal/service/catalog"
)

type CatalogService interface {
	CalculatePrice(ctx context.Context, itemID int64, days int) (*catalog.PriceQuote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
