// Package clock абстрагирует источник текущей даты, чтобы тесты могли подставлять произвольное "сегодня".
package clock

import "time"

type Clock interface {
	Now() time.Time
	// Today возвращает текущую дату без компонента времени (полночь UTC).
	Today() time.Time
}

type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// FixedClock всегда возвращает заданную дату. Используется в тестах.
type FixedClock struct {
	Date time.Time
}

func NewFixedClock(date time.Time) FixedClock {
	return FixedClock{Date: date}
}

func (f FixedClock) Now() time.Time {
	return f.Date
}

func (f FixedClock) Today() time.Time {
	return DateOnly(f.Date)
}

// DateOnly обрезает компонент времени, оставляя полночь UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WholeDaysBetween возвращает число целых дней между from и to. Если from позже to,
// результат отрицательный.
func WholeDaysBetween(from, to time.Time) int {
	const hoursPerDay = 24
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / hoursPerDay)
}

// Latest возвращает более позднюю из двух дат.
func Latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
