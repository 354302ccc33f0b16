// Package extent computes the visible [min, max] date window of the
// timeline from the item set plus an optional settings override.
package extent

import (
	"log/slog"
	"time"

	"github.com/kahu/roadmap/internal/datecodec"
	"github.com/kahu/roadmap/pkg/types"
)

// DefaultLookaheadMonths is how far past the latest item end the
// timeline extends when no override end date is configured. Added in
// UTC month units so month-length variation is respected.
const DefaultLookaheadMonths = 12

// Resolver derives timeline extents. Now is injectable so the
// degenerate empty-input extent is deterministic under test.
type Resolver struct {
	Now    func() time.Time
	Logger *slog.Logger
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Resolve computes the visible window for the given items.
//
// The window always spans ALL items regardless of any status filter:
// filters affect packing and rendering, never the date bounds, so the
// header stays stable as filters toggle. An override end date that
// fails to parse falls back to the default lookahead rather than
// failing the computation.
func (r Resolver) Resolve(items []types.TimelineItem, zoom types.ZoomLevel, overrideEndDate string) types.TimelineExtent {
	if len(items) == 0 {
		now := r.now()
		return types.TimelineExtent{Min: now, Max: now}
	}

	min := items[0].Start
	rawMax := items[0].End
	for _, it := range items[1:] {
		if it.Start.Before(min) {
			min = it.Start
		}
		if it.End.After(rawMax) {
			rawMax = it.End
		}
	}

	max := rawMax.AddDate(0, DefaultLookaheadMonths, 0)
	if overrideEndDate != "" {
		if parsed, err := datecodec.Parse(overrideEndDate); err == nil {
			max = parsed
		} else {
			r.logger().Debug("ignoring unparsable override end date",
				"override", overrideEndDate, "error", err)
		}
	}

	if zoom == types.ZoomMonth {
		// Keep month-grid boundaries aligned with period boundaries
		// exactly: snap min to the first instant of its month and max
		// to the last instant of its month. Other zoom levels align
		// inside the period generator instead.
		min = firstOfMonth(min)
		max = firstOfMonth(max).AddDate(0, 1, 0).Add(-time.Millisecond)
	}

	return types.TimelineExtent{Min: min, Max: max}
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
