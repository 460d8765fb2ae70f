package create_booking

import (
	"fmt"
	"time"

	"github.com/magiclook/ML-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.StartUseDate.IsZero() {
		return fmt.Errorf("%w: startUseDate is required", ErrInvalidDate)
	}

	if req.EndUseDate.IsZero() {
		return fmt.Errorf("%w: endUseDate is required", ErrInvalidDate)
	}

	if req.Size != nil && !domain.IsValidSize(*req.Size) {
		return fmt.Errorf("%w: unknown size %q", ErrInvalidInput, *req.Size)
	}

	return nil
}

// validateDates проверяет календарную корректность периода использования:
// конец не раньше начала, начало строго в будущем, длительность в пределах лимита
func validateDates(startUse, endUse, now time.Time) error {
	if endUse.Before(startUse) {
		return fmt.Errorf("%w: endUseDate precedes startUseDate", ErrInvalidDate)
	}

	if !startOfDay(startUse).After(startOfDay(now)) {
		return fmt.Errorf("%w: startUseDate must be in the future", ErrInvalidDate)
	}

	use, err := domain.NewInterval(startUse, endUse)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if use.DurationDays() > domain.MaxUseDays {
		return fmt.Errorf("%w: rental period exceeds %d days", ErrInvalidDate, domain.MaxUseDays)
	}

	return nil
}

// startOfDay обнуляет время внутри суток, сравниваются только календарные дни
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
