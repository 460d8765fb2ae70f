package domain

import (
	"math"
	"time"
)

// SchedulePolicy derives the pickup and return milestones around the
// requested use period and the full window during which the unit is
// blocked (including post-return laundry days).
type SchedulePolicy struct {
	PickupLeadDays  int
	ReturnSlackDays int
	LaundryDays     int
}

// DefaultSchedulePolicy возвращает политику расписания по умолчанию
func DefaultSchedulePolicy() SchedulePolicy {
	return SchedulePolicy{
		PickupLeadDays:  DefaultPickupLeadDays,
		ReturnSlackDays: DefaultReturnSlackDays,
		LaundryDays:     DefaultLaundryDays,
	}
}

// Schedule computes the booking milestones for a use interval
func (p SchedulePolicy) Schedule(use Interval) (pickup, returnDate time.Time) {
	pickup = use.Start.AddDate(0, 0, -p.PickupLeadDays)
	returnDate = use.End.AddDate(0, 0, p.ReturnSlackDays)
	return pickup, returnDate
}

// BlockedWindow returns the full interval during which the unit cannot
// serve another booking: from pickup through the last laundry day
func (p SchedulePolicy) BlockedWindow(use Interval) Interval {
	return use.Extend(p.PickupLeadDays, p.ReturnSlackDays+p.LaundryDays)
}

// RefundTier одна ступень политики возврата: процент, действующий при
// отмене не позднее чем за MinDaysBefore дней до даты выдачи
type RefundTier struct {
	MinDaysBefore int
	Percent       int
}

// RefundPolicy таблица ступеней возврата, настраивается конфигурацией
// Ступени проверяются от большего MinDaysBefore к меньшему
type RefundPolicy struct {
	Tiers []RefundTier
}

// DefaultRefundPolicy возвращает политику возврата по умолчанию:
// 100% за 7+ дней до выдачи, 50% за 1-6 дней, 0% после
func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		Tiers: []RefundTier{
			{MinDaysBefore: 7, Percent: 100},
			{MinDaysBefore: 1, Percent: 50},
			{MinDaysBefore: 0, Percent: 0},
		},
	}
}

// RefundQuote результат расчета возврата при отмене бронирования
type RefundQuote struct {
	Percent int
	Amount  float64
}

// Quote computes the refund for cancelling a booking with the given
// total price and pickup date at the moment now. Once pickup has
// passed the refund is always zero.
func (p RefundPolicy) Quote(totalPrice float64, pickupDate, now time.Time) RefundQuote {
	daysBefore := daysUntil(now, pickupDate)
	if daysBefore < 0 {
		return RefundQuote{Percent: 0, Amount: 0}
	}

	best := RefundQuote{}
	for _, tier := range p.Tiers {
		if daysBefore >= tier.MinDaysBefore && tier.Percent > best.Percent {
			best.Percent = tier.Percent
		}
	}

	best.Amount = math.Round(totalPrice*float64(best.Percent)) / 100
	return best
}

// daysUntil возвращает число полных календарных дней от now до date
// Отрицательное значение означает, что date уже в прошлом
func daysUntil(now, date time.Time) int {
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}
