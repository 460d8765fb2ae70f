package models

import (
	"time"

	"github.com/magiclook/ML-BookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64 `json:"userId"`
}

// Response модели

// BookingResponse ответ с данными бронирования
// State содержит вычисленное состояние жизненного цикла на момент чтения,
// оно не хранится и выводится из сохраненного статуса и календаря
type BookingResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	ItemID int64 `json:"itemId"`
	UnitID int64 `json:"unitId"`

	PickupDate   string `json:"pickupDate"`   // "2025-10-14"
	StartUseDate string `json:"startUseDate"` // "2025-10-15"
	EndUseDate   string `json:"endUseDate"`   // "2025-10-17"
	ReturnDate   string `json:"returnDate"`   // "2025-10-18"

	TotalDays  int     `json:"totalDays"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"` // сохраненный статус
	State      string  `json:"state"`  // вычисленное состояние

	// Денормализованные данные
	ItemName string `json:"itemName"`
	UnitSize string `json:"unitSize"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RefundQuoteResponse ответ с расчетом возврата при отмене
type RefundQuoteResponse struct {
	BookingID int64   `json:"bookingId"`
	Percent   int     `json:"percent"`
	Amount    float64 `json:"amount"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// now используется для вычисления отображаемого состояния
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ItemID:             b.ItemID,
		UnitID:             b.UnitID,
		PickupDate:         b.PickupDate.Format(domain.DateFormat),
		StartUseDate:       b.StartUseDate.Format(domain.DateFormat),
		EndUseDate:         b.EndUseDate.Format(domain.DateFormat),
		ReturnDate:         b.ReturnDate.Format(domain.DateFormat),
		TotalDays:          b.TotalDays,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		State:              string(b.CurrentState(now)),
		ItemName:           b.ItemName,
		UnitSize:           b.UnitSize,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
