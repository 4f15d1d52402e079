package datafeed

import "time"

// pageCursor is the query window of one page: calendar days in China time, both inclusive.
type pageCursor struct {
	Start time.Time
	End   time.Time
}

// dateOf truncates t to midnight of its calendar date in China time.
func dateOf(t time.Time) time.Time {
	t = t.In(ChinaTZ)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ChinaTZ)
}

func sameDate(a, b time.Time) bool {
	return dateOf(a).Equal(dateOf(b))
}

// windowFrom opens a window at start, at most days long and never past target.
// days <= 0 spans the whole remaining range.
func windowFrom(start, target time.Time, days int) pageCursor {
	end := target
	if days > 0 {
		if e := start.AddDate(0, 0, days-1); e.Before(target) {
			end = e
		}
	}
	return pageCursor{Start: start, End: end}
}

// next opens the window following c.
func (c pageCursor) next(target time.Time, days int) pageCursor {
	return windowFrom(c.End.AddDate(0, 0, 1), target, days)
}

// after moves the start to the day following lastDay, keeping the window end.
// The start never moves backwards.
//
// lastDay is the provider's label date (LabelDate), not the shifted bar date. A daily bar
// labelled 2024-01-05 is stamped 2024-01-04 23:59; advancing from the stamp would query
// 2024-01-05 again and duplicate it.
func (c pageCursor) after(lastDay time.Time) pageCursor {
	start := dateOf(lastDay).AddDate(0, 0, 1)
	if !start.After(c.Start) {
		start = c.Start.AddDate(0, 0, 1)
	}
	return pageCursor{Start: start, End: c.End}
}

func (c pageCursor) exhausted() bool {
	return c.Start.After(c.End)
}

// reachedTarget reports whether the window already covers the last requested day.
func (c pageCursor) reachedTarget(target time.Time) bool {
	return !c.End.Before(target)
}
