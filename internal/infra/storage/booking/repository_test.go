package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclook/ML-BookingService/internal/domain"
	"github.com/magiclook/ML-BookingService/pkg/txmanager"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookingRow(id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).
		AddRow(
			id, int64(10), int64(100), int64(1000),
			date(2025, 10, 14), date(2025, 10, 15), date(2025, 10, 17), date(2025, 10, 18),
			3, 75.00, status, "Evening dress", "M",
			nil, nil, date(2025, 10, 1), date(2025, 10, 1),
		)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		booking := &domain.Booking{
			UserID:       10,
			ItemID:       100,
			UnitID:       1000,
			PickupDate:   date(2025, 10, 14),
			StartUseDate: date(2025, 10, 15),
			EndUseDate:   date(2025, 10, 17),
			ReturnDate:   date(2025, 10, 18),
			TotalDays:    3,
			TotalPrice:   75.00,
			Status:       domain.StatusConfirmed,
			ItemName:     "Evening dress",
			UnitSize:     "M",
		}

		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(
				booking.UserID, booking.ItemID, booking.UnitID,
				booking.PickupDate, booking.StartUseDate, booking.EndUseDate, booking.ReturnDate,
				booking.TotalDays, booking.TotalPrice, string(booking.Status),
				booking.ItemName, booking.UnitSize,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(1), date(2025, 10, 1), date(2025, 10, 1)))

		created, err := repo.Create(ctx, booking)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, date(2025, 10, 1), created.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SerializationFailurePreserved", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: pq.ErrorCode("40001")})

		_, err := repo.Create(ctx, &domain.Booking{Status: domain.StatusConfirmed})
		require.Error(t, err)
		assert.True(t, txmanager.IsSerializationFailure(err))
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int64(1)).
			WillReturnRows(bookingRow(1, "CONFIRMED"))

		booking, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), booking.ID)
		assert.Equal(t, domain.StatusConfirmed, booking.Status)
		assert.Equal(t, date(2025, 10, 15), booking.StartUseDate)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestRepository_GetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := bookingRow(2, "CONFIRMED").
		AddRow(
			int64(1), int64(10), int64(100), int64(1000),
			date(2025, 9, 1), date(2025, 9, 2), date(2025, 9, 4), date(2025, 9, 5),
			3, 75.00, "RETURNED", "Evening dress", "M",
			nil, nil, date(2025, 8, 20), date(2025, 9, 5),
		)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id = \\$1 ORDER BY created_at DESC, id DESC").
		WithArgs(int64(10)).
		WillReturnRows(rows)

	bookings, err := repo.GetByUserID(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(2), bookings[0].ID)
	assert.Equal(t, domain.StatusReturned, bookings[1].Status)
}

func TestRepository_GetActiveByUnit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("WithPruneWindow", func(t *testing.T) {
		around := domain.Interval{Start: date(2025, 10, 10), End: date(2025, 10, 25)}

		// Отмененные фильтруются в SQL, окно отсекает далекие брони
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE unit_id = \\$1 AND status <> \\$2 AND start_use_date <= \\$3 AND end_use_date >= \\$4").
			WithArgs(int64(1000), string(domain.StatusCancelled), around.End, around.Start).
			WillReturnRows(bookingRow(1, "CONFIRMED"))

		bookings, err := repo.GetActiveByUnit(ctx, 1000, &around)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, int64(1000), bookings[0].UnitID)
	})

	t.Run("NoBookings", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE unit_id = \\$1").
			WithArgs(int64(2000), string(domain.StatusCancelled)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		bookings, err := repo.GetActiveByUnit(ctx, 2000, nil)
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})

	t.Run("SerializationFailurePreserved", func(t *testing.T) {
		// Ошибка сериализации, поднятая самим запросом, остается
		// различимой сквозь обёртку репозитория
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE unit_id = \\$1").
			WithArgs(int64(3000), string(domain.StatusCancelled)).
			WillReturnError(&pq.Error{Code: pq.ErrorCode("40001")})

		_, err := repo.GetActiveByUnit(ctx, 3000, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.True(t, txmanager.IsSerializationFailure(err))
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status = \\$1").
			WithArgs(string(domain.StatusReturned), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 1, domain.StatusReturned)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status = \\$1").
			WithArgs(string(domain.StatusReturned), int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 999, domain.StatusReturned)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestRepository_Cancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status = \\$1, cancellation_reason = \\$2").
			WithArgs(string(domain.StatusCancelled), "changed plans", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Cancel(ctx, 1, "changed plans")
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status = \\$1, cancellation_reason = \\$2").
			WithArgs(string(domain.StatusCancelled), "x", int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Cancel(ctx, 999, "x")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
