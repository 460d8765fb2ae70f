package create_booking

import (
	"github.com/magiclook/ML-BookingService/internal/domain"
)

// hasConflict проверяет, пересекается ли запрошенное блокируемое окно
// с блокируемым окном хотя бы одной активной брони экземпляра.
// Сравниваются полные окна (выдача, использование, возврат, чистка)
// с обеих сторон: вещь нельзя выдать, пока предыдущая не вернулась
// из чистки
func hasConflict(existing []*domain.Booking, blocked domain.Interval, policy domain.SchedulePolicy) bool {
	for _, b := range existing {
		if !b.IsActive() {
			continue
		}
		if policy.BlockedWindow(b.UseInterval()).Overlaps(blocked) {
			return true
		}
	}
	return false
}

// pruneWindow возвращает окно для отсечения заведомо далеких броней в SQL.
// Запрос фильтрует по [start_use_date, end_use_date], поэтому окно
// расширяется на полный размах политики с обеих сторон, чтобы не потерять
// брони, чьи окна выдачи/чистки задевают запрошенное окно
func pruneWindow(blocked domain.Interval, policy domain.SchedulePolicy) domain.Interval {
	slack := policy.PickupLeadDays + policy.ReturnSlackDays + policy.LaundryDays
	return blocked.Extend(slack, slack)
}
