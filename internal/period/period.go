// Package period produces the ordered calendar buckets that make up
// the timeline header, one bucketing algorithm per zoom level.
//
// Generation is pure: identical inputs always yield the identical
// ordered list, gap-free and contiguous (each period starts exactly
// Days days after the previous anchor).
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/kahu/roadmap/internal/coords"
	"github.com/kahu/roadmap/pkg/types"
)

// MaxPeriods bounds the month, quarter and fiscal-year loops. Two
// hundred months is roughly sixteen years, beyond any realistic
// roadmap; hitting the cap means the extent is corrupted (dates far in
// the future), so the list is truncated instead of looping on.
const MaxPeriods = 200

// ErrIterationGuard reports that generation was truncated at
// MaxPeriods. The returned slice is still valid and usable.
var ErrIterationGuard = errors.New("period: iteration guard tripped, list truncated")

// Generate returns the bucket sequence covering the extent at the
// given zoom. On guard truncation it returns the truncated list
// together with ErrIterationGuard; callers log and carry on.
func Generate(extent types.TimelineExtent, zoom types.ZoomLevel) ([]types.Period, error) {
	switch zoom {
	case types.ZoomWeek:
		return weeks(extent), nil
	case types.ZoomFortnight:
		return fortnights(extent), nil
	case types.ZoomMonth:
		return months(extent)
	case types.ZoomQuarter:
		return quarters(extent)
	case types.ZoomYear:
		return fiscalYears(extent)
	}
	return months(extent)
}

// weeks anchors at the Monday on or before the extent minimum and
// steps by exactly seven days. Bounded by the extent's day span.
func weeks(extent types.TimelineExtent) []types.Period {
	var out []types.Period
	for a := mondayOnOrBefore(extent.Min); !a.After(extent.Max); a = a.AddDate(0, 0, 7) {
		out = append(out, types.Period{
			Anchor: a,
			Label:  fmt.Sprintf("W%d %s", (a.Day()+6)/7, a.Format("Jan")),
			Days:   7,
		})
	}
	return out
}

// fortnights anchors at day 1 of the minimum's month and steps by 14
// days. A month longer than 28 days leaves an uneven fragment at its
// end; that is the long-standing behavior and is kept as is.
func fortnights(extent types.TimelineExtent) []types.Period {
	var out []types.Period
	for a := firstOfMonth(extent.Min); !a.After(extent.Max); a = a.AddDate(0, 0, 14) {
		out = append(out, types.Period{
			Anchor: a,
			Label:  fmt.Sprintf("F%d %s", (a.Day()+13)/14, a.Format("Jan '06")),
			Days:   14,
		})
	}
	return out
}

// months anchors at day 1 of each calendar month; Days is the true
// month length obtained through the day-zero-of-next-month trick.
func months(extent types.TimelineExtent) ([]types.Period, error) {
	var out []types.Period
	for a := firstOfMonth(extent.Min); !a.After(extent.Max); a = a.AddDate(0, 1, 0) {
		if len(out) >= MaxPeriods {
			return out, ErrIterationGuard
		}
		out = append(out, types.Period{
			Anchor: a,
			Label:  a.Format("Jan '06"),
			Days:   daysInMonth(a),
		})
	}
	return out, nil
}

// quarters anchors at the first day of each calendar quarter
// (January, April, July, October starts) with exact day spans.
func quarters(extent types.TimelineExtent) ([]types.Period, error) {
	var out []types.Period
	for a := quarterStart(extent.Min); !a.After(extent.Max); a = a.AddDate(0, 3, 0) {
		if len(out) >= MaxPeriods {
			return out, ErrIterationGuard
		}
		q := int(a.Month()-1)/3 + 1
		out = append(out, types.Period{
			Anchor: a,
			Label:  fmt.Sprintf("Q%d %d", q, a.Year()),
			Days:   coords.DaysBetween(a, a.AddDate(0, 3, 0)),
		})
	}
	return out, nil
}

// fiscalYears buckets by the New Zealand fiscal year, April 1 through
// March 31, not the Gregorian year. Spans are exact (365 or 366
// depending on where the leap day falls).
func fiscalYears(extent types.TimelineExtent) ([]types.Period, error) {
	var out []types.Period
	for a := FYStart(extent.Min); !a.After(extent.Max); a = a.AddDate(1, 0, 0) {
		if len(out) >= MaxPeriods {
			return out, ErrIterationGuard
		}
		out = append(out, types.Period{
			Anchor: a,
			Label:  fmt.Sprintf("FY%d/%02d", a.Year(), (a.Year()+1)%100),
			Days:   coords.DaysBetween(a, a.AddDate(1, 0, 0)),
		})
	}
	return out, nil
}

// FYStart returns the April 1 that opens the fiscal year containing d:
// dates before April 1 belong to the fiscal year that started the
// previous April.
func FYStart(d time.Time) time.Time {
	d = d.UTC()
	y := d.Year()
	apr1 := time.Date(y, time.April, 1, 0, 0, 0, 0, time.UTC)
	if d.Before(apr1) {
		return time.Date(y-1, time.April, 1, 0, 0, 0, 0, time.UTC)
	}
	return apr1
}

// mondayOnOrBefore steps back to the ISO week start: Sunday maps six
// days back, any other weekday i maps i-1 days back.
func mondayOnOrBefore(d time.Time) time.Time {
	d = midnight(d)
	switch wd := d.Weekday(); wd {
	case time.Monday:
		return d
	case time.Sunday:
		return d.AddDate(0, 0, -6)
	default:
		return d.AddDate(0, 0, -(int(wd) - 1))
	}
}

func daysInMonth(t time.Time) int {
	y, m, _ := t.UTC().Date()
	// Day zero of the next month normalizes to this month's last day.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func quarterStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	qm := time.Month(((int(m)-1)/3)*3 + 1)
	return time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
