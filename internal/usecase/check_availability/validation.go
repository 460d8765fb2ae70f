package check_availability

import (
	"fmt"
	"time"

	"github.com/magiclook/ML-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.StartUseDate.IsZero() || req.EndUseDate.IsZero() {
		return fmt.Errorf("%w: both dates are required", ErrInvalidDate)
	}

	if req.EndUseDate.Before(req.StartUseDate) {
		return fmt.Errorf("%w: endUseDate precedes startUseDate", ErrInvalidDate)
	}

	if !startOfDay(req.StartUseDate).After(startOfDay(now)) {
		return fmt.Errorf("%w: startUseDate must be in the future", ErrInvalidDate)
	}

	if req.Size != nil && !domain.IsValidSize(*req.Size) {
		return fmt.Errorf("%w: unknown size %q", ErrInvalidInput, *req.Size)
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
