package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulePolicy_Schedule(t *testing.T) {
	policy := DefaultSchedulePolicy()
	use := mustInterval(t, date(2025, 10, 15), date(2025, 10, 17))

	pickup, returnDate := policy.Schedule(use)
	assert.Equal(t, date(2025, 10, 14), pickup)
	assert.Equal(t, date(2025, 10, 18), returnDate)
}

func TestSchedulePolicy_BlockedWindow(t *testing.T) {
	use := mustInterval(t, date(2025, 10, 15), date(2025, 10, 17))

	t.Run("Default", func(t *testing.T) {
		// Выдача 14.10, возврат 18.10, чистка 19.10
		blocked := DefaultSchedulePolicy().BlockedWindow(use)
		assert.Equal(t, date(2025, 10, 14), blocked.Start)
		assert.Equal(t, date(2025, 10, 19), blocked.End)
	})

	t.Run("CustomPolicy", func(t *testing.T) {
		policy := SchedulePolicy{PickupLeadDays: 2, ReturnSlackDays: 1, LaundryDays: 3}
		blocked := policy.BlockedWindow(use)
		assert.Equal(t, date(2025, 10, 13), blocked.Start)
		assert.Equal(t, date(2025, 10, 21), blocked.End)
	})

	t.Run("BackToBackBookingsDoNotConflict", func(t *testing.T) {
		// Следующая бронь может начинаться сразу после дня чистки
		blocked := DefaultSchedulePolicy().BlockedWindow(use)
		nextUse := mustInterval(t, date(2025, 10, 20), date(2025, 10, 22))
		nextBlocked := DefaultSchedulePolicy().BlockedWindow(nextUse)

		assert.False(t, blocked.Overlaps(nextBlocked))
	})
}

func TestRefundPolicy_Quote(t *testing.T) {
	policy := DefaultRefundPolicy()
	pickup := date(2025, 10, 14)

	parseDate := func(t *testing.T, s string) time.Time {
		t.Helper()
		now, err := time.Parse(DateFormat, s)
		require.NoError(t, err)
		return now
	}

	tests := []struct {
		name        string
		now         string
		wantPercent int
		wantAmount  float64
	}{
		{"WeekOrMoreBefore", "2025-10-01", 100, 100.00},
		{"ExactlySevenDaysBefore", "2025-10-07", 100, 100.00},
		{"SixDaysBefore", "2025-10-08", 50, 50.00},
		{"DayBefore", "2025-10-13", 50, 50.00},
		{"PickupDay", "2025-10-14", 0, 0},
		{"AfterPickup", "2025-10-16", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := policy.Quote(100.00, pickup, parseDate(t, tt.now))
			assert.Equal(t, tt.wantPercent, quote.Percent)
			assert.Equal(t, tt.wantAmount, quote.Amount)
		})
	}

	t.Run("AmountRoundedToCents", func(t *testing.T) {
		quote := policy.Quote(59.99, pickup, date(2025, 10, 10))
		assert.Equal(t, 50, quote.Percent)
		assert.Equal(t, 30.00, quote.Amount)
	})

	t.Run("CustomTiers", func(t *testing.T) {
		custom := RefundPolicy{Tiers: []RefundTier{
			{MinDaysBefore: 14, Percent: 100},
			{MinDaysBefore: 3, Percent: 25},
		}}

		quote := custom.Quote(200.00, pickup, date(2025, 10, 10))
		assert.Equal(t, 25, quote.Percent)
		assert.Equal(t, 50.00, quote.Amount)
	})
}
