package report

import (
	"fmt"
	"time"
)

// Window is an inclusive date range used by every report. Named ranges are
// anchored at "now"; a custom range spans whole calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

const (
	RangeToday     = "today"
	RangeOneWeek   = "1week"
	RangeFifteen   = "15days"
	RangeOneMonth  = "1month"
	RangeSixMonths = "6months"
	RangeCustom    = "custom"
)

func ResolveWindow(name string, customStart, customEnd *time.Time, now time.Time) (Window, error) {
	start := now
	end := now

	switch name {
	case RangeToday:
		start = startOfDay(now)
	case RangeOneWeek:
		start = now.AddDate(0, 0, -7)
	case RangeFifteen:
		start = now.AddDate(0, 0, -15)
	case RangeOneMonth:
		start = now.AddDate(0, -1, 0)
	case RangeSixMonths:
		start = now.AddDate(0, -6, 0)
	case RangeCustom:
		if customStart != nil {
			start = startOfDay(*customStart)
		}
		if customEnd != nil {
			end = endOfDay(*customEnd)
		}
	default:
		return Window{}, fmt.Errorf("unknown date range: %q", name)
	}

	return Window{Start: start, End: end}, nil
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
