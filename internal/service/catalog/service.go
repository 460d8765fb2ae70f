package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/magiclook/ML-BookingService/internal/domain"
	catalogRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/catalog"
)

// Service сервис каталога со стороны движка бронирования:
// расчет цены аренды и перевод экземпляров в обслуживание и обратно
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// PriceQuote расчет стоимости аренды
type PriceQuote struct {
	ItemID     int64   `json:"itemId"`
	DailyRate  float64 `json:"dailyRate"`
	Days       int     `json:"days"`
	TotalPrice float64 `json:"totalPrice"`
}

// CalculatePrice считает стоимость аренды товара на указанное число дней
// Чистый расчет: дневная ставка, умноженная на дни, без резервирования
func (s *Service) CalculatePrice(ctx context.Context, itemID int64, days int) (*PriceQuote, error) {
	if days < domain.MinUseDays {
		return nil, fmt.Errorf("%w: days must be at least %d", ErrInvalidInput, domain.MinUseDays)
	}

	item, err := s.catalogRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrItemNotFound) {
			s.logger.Warn("CalculatePrice: item id=%d not found", itemID)
			return nil, ErrItemNotFound
		}
		s.logger.Error("CalculatePrice: repository error for item id=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: CalculatePrice - repository error: %v", ErrInternal, err)
	}

	return &PriceQuote{
		ItemID:     itemID,
		DailyRate:  item.PriceRent,
		Days:       days,
		TotalPrice: domain.RentalPrice(item.PriceRent, days),
	}, nil
}

// SetUnitState переводит экземпляр между AVAILABLE и MAINTENANCE
// (операция персонала). Экземпляр в MAINTENANCE не предлагается
// для бронирования независимо от дат
func (s *Service) SetUnitState(ctx context.Context, unitID int64, state domain.UnitState) (*domain.ItemUnit, error) {
	if state != domain.UnitAvailable && state != domain.UnitMaintenance {
		return nil, fmt.Errorf("%w: unknown unit state %q", ErrInvalidInput, state)
	}

	unit, err := s.catalogRepo.GetUnitByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUnitNotFound) {
			s.logger.Warn("SetUnitState: unit id=%d not found", unitID)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("SetUnitState: repository error for unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: SetUnitState - repository error: %v", ErrInternal, err)
	}

	if unit.State == state {
		s.logger.Info("SetUnitState: unit id=%d already in state=%s", unitID, state)
		return unit, nil
	}

	if err := s.catalogRepo.UpdateUnitState(ctx, unitID, state); err != nil {
		if errors.Is(err, catalogRepo.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		s.logger.Error("SetUnitState: repository error for unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: SetUnitState - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetUnitState: unit id=%d moved %s -> %s", unitID, unit.State, state)
	unit.State = state
	return unit, nil
}
