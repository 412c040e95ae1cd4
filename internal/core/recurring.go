package core

import "time"

// Next returns the occurrence one period after t. Monthly and yearly steps keep the
// day of month, clamped to the last day of a shorter target month.
func (f RecurringFrequency) Next(t time.Time) time.Time {
	switch f {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return addMonthsClamped(t, 1)
	case Yearly:
		return addMonthsClamped(t, 12)
	}
	return t
}

// NextAfter returns the first occurrence from anchor that is strictly after now.
// An anchor already after now is returned as is.
func (f RecurringFrequency) NextAfter(anchor, now time.Time) time.Time {
	if !f.Valid() || anchor.After(now) {
		return anchor
	}
	i := f.elapsedPeriods(anchor, now)
	next := f.step(anchor, i)
	for !next.After(now) {
		i++
		next = f.step(anchor, i)
	}
	return next
}

// elapsedPeriods is a lower bound on the periods between anchor and now: the
// occurrence it names is never after now, so NextAfter only steps forward from it.
func (f RecurringFrequency) elapsedPeriods(anchor, now time.Time) int {
	var n int
	switch f {
	case Daily:
		n = int(now.Sub(anchor)/(24*time.Hour)) - 1
	case Weekly:
		n = int(now.Sub(anchor)/(7*24*time.Hour)) - 1
	case Monthly:
		n = (now.Year()-anchor.Year())*12 + int(now.Month()-anchor.Month()) - 1
	case Yearly:
		n = now.Year() - anchor.Year() - 1
	}
	return max(n, 1)
}

// step computes the i-th occurrence from the anchor directly, so month-end clamping
// in one period does not drift the day of later periods.
func (f RecurringFrequency) step(anchor time.Time, i int) time.Time {
	switch f {
	case Daily:
		return anchor.AddDate(0, 0, i)
	case Weekly:
		return anchor.AddDate(0, 0, 7*i)
	case Monthly:
		return addMonthsClamped(anchor, i)
	case Yearly:
		return addMonthsClamped(anchor, 12*i)
	}
	return anchor
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
