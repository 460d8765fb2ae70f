package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclook/ML-BookingService/internal/domain"
	catalogRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/catalog"
)

type mockBookingRepo struct {
	getActiveFn func(ctx context.Context, unitID int64, around *domain.Interval) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetActiveByUnit(ctx context.Context, unitID int64, around *domain.Interval) ([]*domain.Booking, error) {
	return m.getActiveFn(ctx, unitID, around)
}

type mockCatalogRepo struct {
	getItemFn   func(ctx context.Context, id int64) (*domain.Item, error)
	listUnitsFn func(ctx context.Context, itemID int64, size *string) ([]*domain.ItemUnit, error)
}

func (m *mockCatalogRepo) GetItemByID(ctx context.Context, id int64) (*domain.Item, error) {
	return m.getItemFn(ctx, id)
}

func (m *mockCatalogRepo) ListBookableUnits(ctx context.Context, itemID int64, size *string) ([]*domain.ItemUnit, error) {
	return m.listUnitsFn(ctx, itemID, size)
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func unit(id int64) *domain.ItemUnit {
	return &domain.ItemUnit{ID: id, ItemID: 100, Size: "M", State: domain.UnitAvailable}
}

func booking(unitID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		UnitID:       unitID,
		StartUseDate: start,
		EndUseDate:   end,
		Status:       status,
	}
}

func newTestUseCase(bookingRepo *mockBookingRepo, catalog *mockCatalogRepo) *UseCase {
	uc := NewUseCase(bookingRepo, catalog, domain.DefaultSchedulePolicy(), nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: date(2025, 10, 1)}
	return uc
}

func validRequest() *Request {
	return &Request{
		ItemID:       100,
		StartUseDate: date(2025, 10, 15),
		EndUseDate:   date(2025, 10, 17),
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockCatalogRepo{})

	t.Run("ZeroItemID", func(t *testing.T) {
		req := validRequest()
		req.ItemID = 0
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("StartInPast", func(t *testing.T) {
		req := validRequest()
		req.StartUseDate = date(2025, 9, 1)
		req.EndUseDate = date(2025, 9, 3)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		req := validRequest()
		req.EndUseDate = date(2025, 10, 10)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestUseCase_Execute_ItemNotFound(t *testing.T) {
	catalog := &mockCatalogRepo{
		getItemFn: func(context.Context, int64) (*domain.Item, error) {
			return nil, catalogRepo.ErrItemNotFound
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, catalog)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUseCase_Execute_CountsFreeUnits(t *testing.T) {
	// Экземпляр 1000 занят пересекающейся бронью, 1001 свободен,
	// на 1002 бронь отменена и не считается
	bookingsByUnit := map[int64][]*domain.Booking{
		1000: {booking(1000, date(2025, 10, 16), date(2025, 10, 18), domain.StatusConfirmed)},
		1001: nil,
		1002: {booking(1002, date(2025, 10, 15), date(2025, 10, 17), domain.StatusCancelled)},
	}

	bookingRepo := &mockBookingRepo{
		getActiveFn: func(_ context.Context, unitID int64, _ *domain.Interval) ([]*domain.Booking, error) {
			return bookingsByUnit[unitID], nil
		},
	}
	catalog := &mockCatalogRepo{
		getItemFn: func(context.Context, int64) (*domain.Item, error) {
			return &domain.Item{ID: 100, Name: "Evening dress", PriceRent: 25.00}, nil
		},
		listUnitsFn: func(context.Context, int64, *string) ([]*domain.ItemUnit, error) {
			return []*domain.ItemUnit{unit(1000), unit(1001), unit(1002)}, nil
		},
	}
	uc := newTestUseCase(bookingRepo, catalog)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 2, resp.FreeUnits)
	assert.Equal(t, 3, resp.TotalUnits)
}

func TestUseCase_Execute_FullyBooked(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		getActiveFn: func(_ context.Context, unitID int64, _ *domain.Interval) ([]*domain.Booking, error) {
			return []*domain.Booking{
				booking(unitID, date(2025, 10, 14), date(2025, 10, 16), domain.StatusConfirmed),
			}, nil
		},
	}
	catalog := &mockCatalogRepo{
		getItemFn: func(context.Context, int64) (*domain.Item, error) {
			return &domain.Item{ID: 100}, nil
		},
		listUnitsFn: func(context.Context, int64, *string) ([]*domain.ItemUnit, error) {
			return []*domain.ItemUnit{unit(1000), unit(1001)}, nil
		},
	}
	uc := newTestUseCase(bookingRepo, catalog)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, 0, resp.FreeUnits)
	assert.Equal(t, 2, resp.TotalUnits)
}

func TestUseCase_Execute_EmptyPool(t *testing.T) {
	catalog := &mockCatalogRepo{
		getItemFn: func(context.Context, int64) (*domain.Item, error) {
			return &domain.Item{ID: 100}, nil
		},
		listUnitsFn: func(context.Context, int64, *string) ([]*domain.ItemUnit, error) {
			return nil, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, catalog)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, 0, resp.FreeUnits)
	assert.Equal(t, 0, resp.TotalUnits)
}
