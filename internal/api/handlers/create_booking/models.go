package create_booking

import (
	"time"

	"github.com/magiclook/ML-BookingService/internal/domain"
	createBooking "github.com/magiclook/ML-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ItemID       int64   `json:"itemId"`
	StartUseDate string  `json:"startUseDate"` // "2025-10-15"
	EndUseDate   string  `json:"endUseDate"`   // "2025-10-17"
	Size         *string `json:"size,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	ItemID       int64   `json:"itemId"`
	UnitID       int64   `json:"unitId"`
	PickupDate   string  `json:"pickupDate"`
	StartUseDate string  `json:"startUseDate"`
	EndUseDate   string  `json:"endUseDate"`
	ReturnDate   string  `json:"returnDate"`
	TotalDays    int     `json:"totalDays"`
	TotalPrice   float64 `json:"totalPrice"`
	Status       string  `json:"status"`
	ItemName     string  `json:"itemName"`
	UnitSize     string  `json:"unitSize"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startUse, err := time.Parse(domain.DateFormat, r.StartUseDate)
	if err != nil {
		return nil, err
	}

	endUse, err := time.Parse(domain.DateFormat, r.EndUseDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:       userID,
		ItemID:       r.ItemID,
		StartUseDate: startUse,
		EndUseDate:   endUse,
		Size:         r.Size,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		ItemID:       resp.ItemID,
		UnitID:       resp.UnitID,
		PickupDate:   resp.PickupDate.Format(domain.DateFormat),
		StartUseDate: resp.StartUseDate.Format(domain.DateFormat),
		EndUseDate:   resp.EndUseDate.Format(domain.DateFormat),
		ReturnDate:   resp.ReturnDate.Format(domain.DateFormat),
		TotalDays:    resp.TotalDays,
		TotalPrice:   resp.TotalPrice,
		Status:       resp.Status,
		ItemName:     resp.ItemName,
		UnitSize:     resp.UnitSize,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
