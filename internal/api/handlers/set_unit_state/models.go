package set_unit_state

import (
	"github.com/magiclook/ML-BookingService/internal/domain"
)

// SetUnitStateRequest HTTP request model
type SetUnitStateRequest struct {
	State string `json:"state"` // "AVAILABLE" | "MAINTENANCE"
}

// UnitResponse HTTP response model
type UnitResponse struct {
	ID     int64  `json:"id"`
	ItemID int64  `json:"itemId"`
	Size   string `json:"size"`
	State  string `json:"state"`
}

// FromDomainUnit конвертирует domain модель в HTTP response
func FromDomainUnit(unit *domain.ItemUnit) *UnitResponse {
	return &UnitResponse{
		ID:     unit.ID,
		ItemID: unit.ItemID,
		Size:   unit.Size,
		State:  string(unit.State),
	}
}
