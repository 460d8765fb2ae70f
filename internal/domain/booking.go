package domain

import (
	"time"
)

// BookingStatus represents the stored status of a booking.
// Only three values are ever written; the richer display state is
// recomputed from the calendar on every read (see CurrentState).
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusReturned  BookingStatus = "RETURNED"
)

// DisplayState represents the lifecycle state shown to clients.
// It is derived from the stored status plus the four milestone dates
// and is never persisted.
type DisplayState string

const (
	StateConfirmed DisplayState = "CONFIRMED"
	StateActive    DisplayState = "ACTIVE"
	StateOverdue   DisplayState = "OVERDUE"
	StateCompleted DisplayState = "COMPLETED"
	StateCancelled DisplayState = "CANCELLED"
)

// Booking represents a reservation of exactly one physical unit
// for one date range
type Booking struct {
	ID     int64
	UserID int64
	ItemID int64
	UnitID int64

	// Milestone dates: pickup <= start_use <= end_use <= return.
	// Pickup and return are derived by schedule policy, not user-chosen.
	PickupDate   time.Time
	StartUseDate time.Time
	EndUseDate   time.Time
	ReturnDate   time.Time

	TotalDays  int
	TotalPrice float64
	Status     BookingStatus

	// Denormalized data for history
	ItemName string
	UnitSize string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UseInterval returns the [start_use, end_use] interval of the booking
func (b *Booking) UseInterval() Interval {
	iv, _ := NewInterval(b.StartUseDate, b.EndUseDate)
	return iv
}

// IsActive returns true if the booking still blocks its unit
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CurrentState derives the display state from the stored status and the
// clock. A cancelled booking short-circuits all date logic; everything
// else is a pure projection of now against the milestone dates, so no
// background job is needed to advance bookings through their lifecycle.
func (b *Booking) CurrentState(now time.Time) DisplayState {
	if b.Status == StatusCancelled {
		return StateCancelled
	}

	if now.Before(b.StartUseDate) {
		return StateConfirmed
	}

	if now.After(b.EndUseDate) {
		// Past the return date and never marked returned: the renter
		// is holding the unit longer than agreed.
		if now.After(b.ReturnDate) && b.Status != StatusReturned {
			return StateOverdue
		}
		return StateCompleted
	}

	return StateActive
}

// CanBeCancelled returns true while cancellation is still permitted:
// the stay has not started and the booking is not already terminal
func (b *Booking) CanBeCancelled(now time.Time) bool {
	return b.CurrentState(now) == StateConfirmed
}
