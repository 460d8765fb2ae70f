package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclook/ML-BookingService/internal/domain"
	bookingRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/booking"
	"github.com/magiclook/ML-BookingService/internal/integrations/notifyservice"
	"github.com/magiclook/ML-BookingService/internal/service/bookings/models"
)

type mockBookingRepo struct {
	getByIDFn      func(ctx context.Context, id int64) (*domain.Booking, error)
	getByUserIDFn  func(ctx context.Context, userID int64) ([]*domain.Booking, error)
	updateStatusFn func(ctx context.Context, id int64, status domain.BookingStatus) error
	cancelFn       func(ctx context.Context, id int64, reason string) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	return m.cancelFn(ctx, id, reason)
}

type mockCatalogRepo struct {
	hintCalls int
	hintErr   error
}

func (m *mockCatalogRepo) UpdateItemAvailabilityHint(context.Context, int64, bool, *time.Time) error {
	m.hintCalls++
	return m.hintErr
}

type mockNotifyClient struct {
	sent []*notifyservice.Notification
}

func (m *mockNotifyClient) SendWithGracefulDegradation(_ context.Context, n *notifyservice.Notification) error {
	m.sent = append(m.sent, n)
	return nil
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

// storedBooking бронь с использованием [15.10, 17.10], выдача 14.10, возврат 18.10
func storedBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           1,
		UserID:       10,
		ItemID:       100,
		UnitID:       1000,
		PickupDate:   date(2025, 10, 14),
		StartUseDate: date(2025, 10, 15),
		EndUseDate:   date(2025, 10, 17),
		ReturnDate:   date(2025, 10, 18),
		TotalDays:    3,
		TotalPrice:   100.00,
		Status:       status,
		ItemName:     "Evening dress",
		UnitSize:     "M",
	}
}

func newTestService(repo *mockBookingRepo, catalog *mockCatalogRepo, notify *mockNotifyClient, now time.Time) *Service {
	svc := NewService(repo, catalog, notify, domain.DefaultRefundPolicy(), nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}
	return svc
}

func TestService_GetByID(t *testing.T) {
	repo := &mockBookingRepo{
		getByIDFn: func(_ context.Context, id int64) (*domain.Booking, error) {
			if id != 1 {
				return nil, bookingRepo.ErrBookingNotFound
			}
			return storedBooking(domain.StatusConfirmed), nil
		},
	}
	svc := newTestService(repo, &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 16))

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		// Использование идет, отображаемое состояние вычислено на лету
		assert.Equal(t, string(domain.StateActive), resp.State)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999, 10)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 77)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	repo := &mockBookingRepo{
		getByUserIDFn: func(_ context.Context, userID int64) ([]*domain.Booking, error) {
			return []*domain.Booking{
				storedBooking(domain.StatusConfirmed),
				storedBooking(domain.StatusCancelled),
			}, nil
		},
	}
	svc := newTestService(repo, &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 1))

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 10})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, string(domain.StateConfirmed), resp.Bookings[0].State)
	assert.Equal(t, string(domain.StateCancelled), resp.Bookings[1].State)
}

func TestService_Cancel(t *testing.T) {
	newRepo := func(status domain.BookingStatus) *mockBookingRepo {
		return &mockBookingRepo{
			getByIDFn: func(_ context.Context, id int64) (*domain.Booking, error) {
				return storedBooking(status), nil
			},
			cancelFn: func(_ context.Context, id int64, reason string) error {
				assert.Equal(t, int64(1), id)
				assert.Equal(t, "changed plans", reason)
				return nil
			},
		}
	}
	req := &models.CancelBookingRequest{UserID: 10, CancellationReason: "changed plans"}

	t.Run("FullRefundWeekBefore", func(t *testing.T) {
		notify := &mockNotifyClient{}
		svc := newTestService(newRepo(domain.StatusConfirmed), &mockCatalogRepo{}, notify, date(2025, 10, 7))

		refund, err := svc.Cancel(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, 100, refund.Percent)
		assert.Equal(t, 100.00, refund.Amount)

		require.Len(t, notify.sent, 1)
		assert.Equal(t, notifyservice.EventBookingCancelled, notify.sent[0].Event)
	})

	t.Run("HalfRefundDayBefore", func(t *testing.T) {
		svc := newTestService(newRepo(domain.StatusConfirmed), &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 13))

		refund, err := svc.Cancel(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, 50, refund.Percent)
		assert.Equal(t, 50.00, refund.Amount)
	})

	t.Run("UseStartedCannotCancel", func(t *testing.T) {
		svc := newTestService(newRepo(domain.StatusConfirmed), &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 16))

		_, err := svc.Cancel(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("AlreadyCancelled", func(t *testing.T) {
		svc := newTestService(newRepo(domain.StatusCancelled), &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 7))

		_, err := svc.Cancel(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		svc := newTestService(newRepo(domain.StatusConfirmed), &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 7))

		stranger := &models.CancelBookingRequest{UserID: 77, CancellationReason: "x"}
		_, err := svc.Cancel(context.Background(), 1, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_MarkReturned(t *testing.T) {
	newRepo := func(status domain.BookingStatus) *mockBookingRepo {
		return &mockBookingRepo{
			getByIDFn: func(_ context.Context, id int64) (*domain.Booking, error) {
				return storedBooking(status), nil
			},
			updateStatusFn: func(_ context.Context, id int64, status domain.BookingStatus) error {
				assert.Equal(t, domain.StatusReturned, status)
				return nil
			},
		}
	}

	t.Run("Success", func(t *testing.T) {
		catalog := &mockCatalogRepo{}
		notify := &mockNotifyClient{}
		svc := newTestService(newRepo(domain.StatusConfirmed), catalog, notify, date(2025, 10, 18))

		resp, err := svc.MarkReturned(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusReturned), resp.Status)
		assert.Equal(t, string(domain.StateCompleted), resp.State)

		// Карточка товара снова помечена доступной
		assert.Equal(t, 1, catalog.hintCalls)

		require.Len(t, notify.sent, 1)
		assert.Equal(t, notifyservice.EventBookingReturned, notify.sent[0].Event)
	})

	t.Run("AlreadyReturned", func(t *testing.T) {
		svc := newTestService(newRepo(domain.StatusReturned), &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 18))

		_, err := svc.MarkReturned(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCannotReturn)
	})

	t.Run("Cancelled", func(t *testing.T) {
		svc := newTestService(newRepo(domain.StatusCancelled), &mockCatalogRepo{}, &mockNotifyClient{}, date(2025, 10, 18))

		_, err := svc.MarkReturned(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCannotReturn)
	})

	t.Run("HintFailureDoesNotFailReturn", func(t *testing.T) {
		catalog := &mockCatalogRepo{hintErr: assert.AnError}
		svc := newTestService(newRepo(domain.StatusConfirmed), catalog, &mockNotifyClient{}, date(2025, 10, 18))

		_, err := svc.MarkReturned(context.Background(), 1)
		assert.NoError(t, err)
	})
}
