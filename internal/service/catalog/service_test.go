package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclook/ML-BookingService/internal/domain"
	catalogRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/catalog"
)

type mockCatalogRepo struct {
	getItemFn     func(ctx context.Context, id int64) (*domain.Item, error)
	getUnitFn     func(ctx context.Context, id int64) (*domain.ItemUnit, error)
	updateStateFn func(ctx context.Context, unitID int64, state domain.UnitState) error
	updateCalls   int
}

func (m *mockCatalogRepo) GetItemByID(ctx context.Context, id int64) (*domain.Item, error) {
	return m.getItemFn(ctx, id)
}

func (m *mockCatalogRepo) GetUnitByID(ctx context.Context, id int64) (*domain.ItemUnit, error) {
	return m.getUnitFn(ctx, id)
}

func (m *mockCatalogRepo) UpdateUnitState(ctx context.Context, unitID int64, state domain.UnitState) error {
	m.updateCalls++
	if m.updateStateFn != nil {
		return m.updateStateFn(ctx, unitID, state)
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_CalculatePrice(t *testing.T) {
	repo := &mockCatalogRepo{
		getItemFn: func(_ context.Context, id int64) (*domain.Item, error) {
			if id != 100 {
				return nil, catalogRepo.ErrItemNotFound
			}
			return &domain.Item{ID: 100, Name: "Evening dress", PriceRent: 25.00}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	t.Run("Success", func(t *testing.T) {
		quote, err := svc.CalculatePrice(context.Background(), 100, 3)
		require.NoError(t, err)
		assert.Equal(t, 25.00, quote.DailyRate)
		assert.Equal(t, 3, quote.Days)
		assert.Equal(t, 75.00, quote.TotalPrice)
	})

	t.Run("SingleDay", func(t *testing.T) {
		quote, err := svc.CalculatePrice(context.Background(), 100, 1)
		require.NoError(t, err)
		assert.Equal(t, 25.00, quote.TotalPrice)
	})

	t.Run("ZeroDays", func(t *testing.T) {
		_, err := svc.CalculatePrice(context.Background(), 100, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ItemNotFound", func(t *testing.T) {
		_, err := svc.CalculatePrice(context.Background(), 999, 3)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestService_SetUnitState(t *testing.T) {
	newRepo := func(state domain.UnitState) *mockCatalogRepo {
		return &mockCatalogRepo{
			getUnitFn: func(_ context.Context, id int64) (*domain.ItemUnit, error) {
				if id != 1000 {
					return nil, catalogRepo.ErrUnitNotFound
				}
				return &domain.ItemUnit{ID: 1000, ItemID: 100, Size: "M", State: state}, nil
			},
		}
	}

	t.Run("ToMaintenance", func(t *testing.T) {
		repo := newRepo(domain.UnitAvailable)
		svc := NewService(repo, nopLogger{})

		unit, err := svc.SetUnitState(context.Background(), 1000, domain.UnitMaintenance)
		require.NoError(t, err)
		assert.Equal(t, domain.UnitMaintenance, unit.State)
		assert.Equal(t, 1, repo.updateCalls)
	})

	t.Run("AlreadyInState", func(t *testing.T) {
		repo := newRepo(domain.UnitMaintenance)
		svc := NewService(repo, nopLogger{})

		unit, err := svc.SetUnitState(context.Background(), 1000, domain.UnitMaintenance)
		require.NoError(t, err)
		assert.Equal(t, domain.UnitMaintenance, unit.State)
		// Повторный перевод в то же состояние не трогает хранилище
		assert.Equal(t, 0, repo.updateCalls)
	})

	t.Run("UnknownState", func(t *testing.T) {
		svc := NewService(newRepo(domain.UnitAvailable), nopLogger{})

		_, err := svc.SetUnitState(context.Background(), 1000, domain.UnitState("BROKEN"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("UnitNotFound", func(t *testing.T) {
		svc := NewService(newRepo(domain.UnitAvailable), nopLogger{})

		_, err := svc.SetUnitState(context.Background(), 999, domain.UnitAvailable)
		assert.ErrorIs(t, err, ErrUnitNotFound)
	})
}
