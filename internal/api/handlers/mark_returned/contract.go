package mark_returned

import (
	"context"

	"github.com/magiclook/ML-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	MarkReturned(ctx context.Context, bookingID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
