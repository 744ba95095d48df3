package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type TimeRange string

const (
	TimeRangeThisMonth   TimeRange = "THIS_MONTH"
	TimeRangeLastMonth   TimeRange = "LAST_MONTH"
	TimeRangeThisQuarter TimeRange = "THIS_QUARTER"
	TimeRangeThisYear    TimeRange = "THIS_YEAR"
	TimeRangeLastYear    TimeRange = "LAST_YEAR"
)

var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRanges lists every accepted range in display order.
var TimeRanges = []TimeRange{
	TimeRangeThisMonth,
	TimeRangeLastMonth,
	TimeRangeThisQuarter,
	TimeRangeThisYear,
	TimeRangeLastYear,
}

// ParseTimeRange maps a query parameter onto a TimeRange. An empty value
// selects THIS_MONTH.
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TimeRangeThisMonth, nil
	}
	for _, tr := range TimeRanges {
		if TimeRange(s) == tr {
			return tr, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
}

// Window is an inclusive [Start, End] interval in UTC.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Window resolves the range against now. Ranges that include the current
// period end at now; closed ranges end on the last instant of their period.
func (tr TimeRange) Window(now time.Time) Window {
	now = now.UTC()
	switch tr {
	case TimeRangeLastMonth:
		cur := monthStart(now)
		return Window{Start: cur.AddDate(0, -1, 0), End: justBefore(cur)}
	case TimeRangeThisQuarter:
		return Window{Start: quarterStart(now), End: now}
	case TimeRangeThisYear:
		return Window{Start: yearStart(now.Year()), End: now}
	case TimeRangeLastYear:
		return Window{Start: yearStart(now.Year() - 1), End: justBefore(yearStart(now.Year()))}
	default:
		return Window{Start: monthStart(now), End: now}
	}
}

// TrendWindow runs from the start of Window(now) through now, so closed
// ranges still chart every month up to the current one.
func (tr TimeRange) TrendWindow(now time.Time) Window {
	return Window{Start: tr.Window(now).Start, End: now.UTC()}
}

// PreviousWindow is the full period immediately preceding Window(now), used
// as the comparison base for growth rates.
func (tr TimeRange) PreviousWindow(now time.Time) Window {
	now = now.UTC()
	switch tr {
	case TimeRangeLastMonth:
		cur := monthStart(now)
		return Window{Start: cur.AddDate(0, -2, 0), End: justBefore(cur.AddDate(0, -1, 0))}
	case TimeRangeThisQuarter:
		cur := quarterStart(now)
		return Window{Start: cur.AddDate(0, -3, 0), End: justBefore(cur)}
	case TimeRangeThisYear:
		return Window{Start: yearStart(now.Year() - 1), End: justBefore(yearStart(now.Year()))}
	case TimeRangeLastYear:
		return Window{Start: yearStart(now.Year() - 2), End: justBefore(yearStart(now.Year() - 1))}
	default:
		cur := monthStart(now)
		return Window{Start: cur.AddDate(0, -1, 0), End: justBefore(cur)}
	}
}

type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthsBetween enumerates calendar months from start through end, both
// boundary months included, in chronological order.
func MonthsBetween(start, end time.Time) []YearMonth {
	var months []YearMonth
	last := monthStart(end.UTC())
	for cur := monthStart(start.UTC()); !cur.After(last); cur = cur.AddDate(0, 1, 0) {
		months = append(months, YearMonth{Year: cur.Year(), Month: cur.Month()})
	}
	return months
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func quarterStart(t time.Time) time.Time {
	first := (int(t.Month())-1)/3*3 + 1
	return time.Date(t.Year(), time.Month(first), 1, 0, 0, 0, 0, time.UTC)
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func justBefore(t time.Time) time.Time {
	return t.Add(-time.Nanosecond)
}
