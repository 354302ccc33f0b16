// Package coords converts between UTC instants and horizontal pixel
// offsets using a zoom-dependent pixels-per-day density.
package coords

import (
	"math"
	"time"

	"github.com/kahu/roadmap/pkg/types"
)

// Pixels per day at each zoom level. Coarser zoom means fewer pixels
// per day, keeping the total timeline width bounded.
const (
	pxPerDayWeek      = 20
	pxPerDayFortnight = 10
	pxPerDayMonth     = 4
	pxPerDayQuarter   = 2
	pxPerDayYear      = 1
)

// PxPerDay returns the pixel density for a zoom level.
func PxPerDay(zoom types.ZoomLevel) float64 {
	switch zoom {
	case types.ZoomWeek:
		return pxPerDayWeek
	case types.ZoomFortnight:
		return pxPerDayFortnight
	case types.ZoomMonth:
		return pxPerDayMonth
	case types.ZoomQuarter:
		return pxPerDayQuarter
	case types.ZoomYear:
		return pxPerDayYear
	}
	return pxPerDayMonth
}

// DaysBetween is the rounded whole-day span from a to b. Rounding a
// UTC millisecond difference makes the count immune to daylight-saving
// artifacts by construction.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// Position maps a date to its pixel offset from the extent minimum.
// Dates before the minimum clamp to zero.
func Position(date, min time.Time, zoom types.ZoomLevel) float64 {
	return math.Max(0, float64(DaysBetween(min, date))*PxPerDay(zoom))
}

// Width maps a date span to a bar width. The 1px floor guarantees even
// a degenerate span never paints a zero-width artifact.
func Width(start, end time.Time, zoom types.ZoomLevel) float64 {
	return math.Max(1, float64(DaysBetween(start, end))*PxPerDay(zoom))
}

// TotalWidth is the full scrollable width of the timeline.
func TotalWidth(extent types.TimelineExtent, zoom types.ZoomLevel) float64 {
	return float64(DaysBetween(extent.Min, extent.Max)) * PxPerDay(zoom)
}
