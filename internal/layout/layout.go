// Package layout is the facade over the timeline engine: it composes
// the date codec, extent resolver, period generator, row allocator and
// coordinate mapper into a single synchronous recomputation.
//
// The engine is stateless and side-effect free: every call builds a
// fresh LayoutResult snapshot from immutable inputs, and no failure of
// a sub-step aborts the host — bad records shrink the result, they
// never blank it.
package layout

import (
	"errors"
	"log/slog"
	"time"

	"github.com/kahu/roadmap/internal/coords"
	"github.com/kahu/roadmap/internal/datecodec"
	"github.com/kahu/roadmap/internal/extent"
	"github.com/kahu/roadmap/internal/metrics"
	"github.com/kahu/roadmap/internal/period"
	"github.com/kahu/roadmap/internal/rowpack"
	"github.com/kahu/roadmap/pkg/types"
)

// Engine computes layouts. The zero value is usable: a nil Clock means
// wall clock, a nil Logger means slog.Default(), a nil Metrics means
// no instrumentation.
type Engine struct {
	Clock   func() time.Time
	Logger  *slog.Logger
	Metrics *metrics.Collector
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Decode converts raw item records into timeline items. Records with
// an unparsable date or a non-positive duration are dropped and
// logged; a single bad record must not take the whole timeline down.
func (e *Engine) Decode(records []types.ItemRecord) []types.TimelineItem {
	items := make([]types.TimelineItem, 0, len(records))
	for _, rec := range records {
		start, err := datecodec.Parse(rec.StartDate)
		if err != nil {
			e.dropRecord(rec, metrics.ReasonBadDate, err)
			continue
		}
		end, err := datecodec.Parse(rec.EndDate)
		if err != nil {
			e.dropRecord(rec, metrics.ReasonBadDate, err)
			continue
		}
		if !end.After(start) {
			e.dropRecord(rec, metrics.ReasonInvalidRange,
				errors.New("end date is not after start date"))
			continue
		}
		items = append(items, types.TimelineItem{
			ID:     rec.ID,
			Title:  rec.Title,
			Start:  start,
			End:    end,
			Status: types.StatusTag(rec.Status),
			Kind:   types.Kind(rec.Kind),
		})
	}
	return items
}

func (e *Engine) dropRecord(rec types.ItemRecord, reason string, err error) {
	e.logger().Warn("dropping item record",
		"id", rec.ID, "reason", reason, "error", err)
	e.Metrics.RecordDropped(reason)
}

// Layout runs one full recomputation.
//
// Steps: filter by status, resolve the extent over the UNFILTERED
// items (so the header never moves when filters toggle), generate
// periods, pack the filtered items into rows, then map everything to
// pixels. Rects are ordered by row index, then start date.
func (e *Engine) Layout(items []types.TimelineItem, filter types.StatusFilter, zoom types.ZoomLevel, overrideEndDate string) types.LayoutResult {
	started := time.Now()

	if len(items) == 0 {
		// No data: the render layer shows its empty state.
		return types.LayoutResult{}
	}

	visible := make([]types.TimelineItem, 0, len(items))
	for _, it := range items {
		if filter.Allows(it.Status) {
			visible = append(visible, it)
		}
	}

	resolver := extent.Resolver{Now: e.Clock, Logger: e.Logger}
	ext := resolver.Resolve(items, zoom, overrideEndDate)

	periods, err := period.Generate(ext, zoom)
	if errors.Is(err, period.ErrIterationGuard) {
		e.logger().Warn("period generation truncated",
			"zoom", zoom, "min", ext.Min, "max", ext.Max, "cap", period.MaxPeriods)
		e.Metrics.RecordGuardTrip()
	}
	for i := range periods {
		p := &periods[i]
		p.LeftPx = coords.Position(p.Anchor, ext.Min, zoom)
		p.WidthPx = coords.Width(p.Anchor, p.Anchor.AddDate(0, 0, p.Days), zoom)
	}

	rows := rowpack.Allocate(visible)
	rects := make([]types.ItemRect, 0, len(visible))
	for ri, row := range rows {
		for _, it := range row.Items {
			rects = append(rects, types.ItemRect{
				ItemID:   it.ID,
				RowIndex: ri,
				LeftPx:   coords.Position(it.Start, ext.Min, zoom),
				WidthPx:  coords.Width(it.Start, it.End, zoom),
			})
		}
	}

	result := types.LayoutResult{
		Extent:       ext,
		Periods:      periods,
		Rows:         rows,
		ItemRects:    rects,
		TotalWidthPx: coords.TotalWidth(ext, zoom),
	}
	e.Metrics.RecordLayout(time.Since(started).Seconds(), len(rows), len(periods))
	return result
}

// LayoutRecords decodes raw records and lays them out in one call.
func (e *Engine) LayoutRecords(records []types.ItemRecord, filter types.StatusFilter, zoom types.ZoomLevel, overrideEndDate string) types.LayoutResult {
	return e.Layout(e.Decode(records), filter, zoom, overrideEndDate)
}
