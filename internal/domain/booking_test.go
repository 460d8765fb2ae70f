package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// testBooking бронь с использованием [15.10, 17.10], выдача 14.10, возврат 18.10
func testBooking(status BookingStatus) *Booking {
	return &Booking{
		ID:           1,
		UserID:       10,
		ItemID:       100,
		UnitID:       1000,
		PickupDate:   date(2025, 10, 14),
		StartUseDate: date(2025, 10, 15),
		EndUseDate:   date(2025, 10, 17),
		ReturnDate:   date(2025, 10, 18),
		TotalDays:    3,
		TotalPrice:   75.00,
		Status:       status,
	}
}

func TestBooking_CurrentState(t *testing.T) {
	tests := []struct {
		name   string
		status BookingStatus
		now    time.Time
		want   DisplayState
	}{
		{
			name:   "BeforeUseStarts",
			status: StatusConfirmed,
			now:    date(2025, 10, 13),
			want:   StateConfirmed,
		},
		{
			name:   "PickupDayStillConfirmed",
			status: StatusConfirmed,
			now:    date(2025, 10, 14),
			want:   StateConfirmed,
		},
		{
			name:   "DuringUse",
			status: StatusConfirmed,
			now:    time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC),
			want:   StateActive,
		},
		{
			name:   "FirstUseDay",
			status: StatusConfirmed,
			now:    date(2025, 10, 15),
			want:   StateActive,
		},
		{
			name:   "AfterUseBeforeReturnDeadline",
			status: StatusConfirmed,
			now:    date(2025, 10, 18),
			want:   StateCompleted,
		},
		{
			name:   "PastReturnDeadlineNotReturned",
			status: StatusConfirmed,
			now:    date(2025, 10, 21),
			want:   StateOverdue,
		},
		{
			name:   "PastReturnDeadlineReturned",
			status: StatusReturned,
			now:    date(2025, 10, 21),
			want:   StateCompleted,
		},
		{
			name:   "CancelledShortCircuitsDates",
			status: StatusCancelled,
			now:    time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC),
			want:   StateCancelled,
		},
		{
			name:   "CancelledBeforeUse",
			status: StatusCancelled,
			now:    date(2025, 10, 1),
			want:   StateCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBooking(tt.status)
			assert.Equal(t, tt.want, b.CurrentState(tt.now))
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	b := testBooking(StatusConfirmed)

	assert.True(t, b.CanBeCancelled(date(2025, 10, 10)))
	assert.True(t, b.CanBeCancelled(date(2025, 10, 14)))

	// Использование началось, отмена запрещена
	assert.False(t, b.CanBeCancelled(date(2025, 10, 15)))
	assert.False(t, b.CanBeCancelled(date(2025, 10, 20)))

	cancelled := testBooking(StatusCancelled)
	assert.False(t, cancelled.CanBeCancelled(date(2025, 10, 10)))
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, testBooking(StatusConfirmed).IsActive())
	assert.True(t, testBooking(StatusReturned).IsActive())
	assert.False(t, testBooking(StatusCancelled).IsActive())
}

func TestBooking_UseInterval(t *testing.T) {
	b := testBooking(StatusConfirmed)
	iv := b.UseInterval()

	assert.Equal(t, date(2025, 10, 15), iv.Start)
	assert.Equal(t, date(2025, 10, 17), iv.End)
	assert.Equal(t, 3, iv.DurationDays())
}
