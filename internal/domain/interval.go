package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange возвращается при попытке создать интервал,
// у которого конец раньше начала
var ErrInvalidRange = errors.New("domain: interval end precedes start")

// Interval замкнутый диапазон календарных дат [Start, End]
// Обе границы включительно: интервал, заканчивающийся в день D, и интервал,
// начинающийся в день D, пересекаются: вещь нельзя выдать двум клиентам
// в один и тот же день
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал из двух дат
// Время внутри суток отбрасывается, сравниваются только календарные дни
func NewInterval(start, end time.Time) (Interval, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return Interval{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidRange, s.Format(DateFormat), e.Format(DateFormat))
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps возвращает true, если интервалы имеют хотя бы один общий день
func (i Interval) Overlaps(other Interval) bool {
	return !i.End.Before(other.Start) && !other.End.Before(i.Start)
}

// DurationDays возвращает длину интервала в днях, обе границы включительно
// Интервал из одного дня имеет длину 1
func (i Interval) DurationDays() int {
	return int(i.End.Sub(i.Start).Hours()/24) + 1
}

// Extend возвращает интервал, расширенный на указанное число дней
// в обе стороны; используется для построения полного блокируемого окна
// (выдача, возврат, чистка) вокруг периода использования
func (i Interval) Extend(daysBefore, daysAfter int) Interval {
	return Interval{
		Start: i.Start.AddDate(0, 0, -daysBefore),
		End:   i.End.AddDate(0, 0, daysAfter),
	}
}

// String возвращает строковое представление интервала
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Start.Format(DateFormat), i.End.Format(DateFormat))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
