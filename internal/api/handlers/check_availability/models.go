package check_availability

import (
	"github.com/magiclook/ML-BookingService/internal/domain"
	checkAvailability "github.com/magiclook/ML-BookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ItemID       int64  `json:"itemId"`
	StartUseDate string `json:"startUseDate"`
	EndUseDate   string `json:"endUseDate"`
	Available    bool   `json:"available"`
	FreeUnits    int    `json:"freeUnits"`
	TotalUnits   int    `json:"totalUnits"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ItemID:       resp.ItemID,
		StartUseDate: resp.StartUseDate.Format(domain.DateFormat),
		EndUseDate:   resp.EndUseDate.Format(domain.DateFormat),
		Available:    resp.Available,
		FreeUnits:    resp.FreeUnits,
		TotalUnits:   resp.TotalUnits,
	}
}
