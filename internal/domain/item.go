package domain

import "time"

// UnitState represents the operational state of a physical unit
type UnitState string

const (
	UnitAvailable   UnitState = "AVAILABLE"
	UnitMaintenance UnitState = "MAINTENANCE"
)

// Item represents a logical catalog entry owned by a shop.
// The catalog itself is managed elsewhere; the booking engine only
// reads items and refreshes the denormalized availability hint.
type Item struct {
	ID          int64
	Name        string
	Brand       string
	Material    string
	Color       string
	Gender      string
	Category    string
	Subcategory string
	PriceRent   float64
	PriceSale   *float64
	ShopID      int64

	// Denormalized hint for catalog listings, not authoritative:
	// availability is always decided against booking intervals
	Available         bool
	NextAvailableDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemUnit represents one physical, individually bookable instance
// of an Item
type ItemUnit struct {
	ID     int64
	ItemID int64
	Size   string
	State  UnitState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the unit may be offered to renters
// A unit in maintenance is never offered regardless of dates
func (u *ItemUnit) IsBookable() bool {
	return u.State == UnitAvailable
}
