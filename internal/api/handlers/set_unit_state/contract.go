package set_unit_state

import (
	"context"

	"github.com/magiclook/ML-BookingService/internal/domain"
)

type CatalogService interface {
	SetUnitState(ctx context.Context, unitID int64, state domain.UnitState) (*domain.ItemUnit, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
