// Package rowpack assigns roadmap items to horizontal rows so that no
// two items in a row overlap in time.
//
// The allocator is greedy first-fit interval partitioning: items
// sorted by start date are placed in the lowest-indexed row that has
// no conflict. For interval graphs this greedy order is provably
// optimal, so the row count always equals the interval set's depth
// (the maximum number of items active at any instant).
package rowpack

import (
	"sort"

	"github.com/kahu/roadmap/pkg/types"
)

// Allocate packs items into rows. The input slice is not mutated; the
// caller passes the status-filtered subset. Row order carries no
// meaning beyond packing.
func Allocate(items []types.TimelineItem) []types.Row {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]types.TimelineItem, len(items))
	copy(sorted, items)
	// Start ascending; among equal starts, longer items first to
	// minimize fragmentation.
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.After(sorted[j].End)
	})

	var rows []types.Row
next:
	for _, it := range sorted {
		for ri := range rows {
			if fits(rows[ri], it) {
				rows[ri].Items = append(rows[ri].Items, it)
				continue next
			}
		}
		rows = append(rows, types.Row{Items: []types.TimelineItem{it}})
	}
	return rows
}

// fits reports whether the item conflicts with no current member of
// the row under the half-open rule: touching endpoints (end == start)
// do not count as overlap.
func fits(row types.Row, it types.TimelineItem) bool {
	for _, m := range row.Items {
		if overlaps(m, it) {
			return false
		}
	}
	return true
}

func overlaps(a, b types.TimelineItem) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Depth computes the maximum simultaneous overlap of the item set by
// an event sweep. It exists as an independent reference for the
// allocator's optimality guarantee and for capacity reporting.
func Depth(items []types.TimelineItem) int {
	type event struct {
		at    int64
		delta int
	}
	events := make([]event, 0, len(items)*2)
	for _, it := range items {
		events = append(events, event{it.Start.UnixMilli(), +1})
		events = append(events, event{it.End.UnixMilli(), -1})
	}
	// Ends sort before starts at the same instant so that touching
	// intervals do not count as concurrent.
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta
	})

	depth, max := 0, 0
	for _, e := range events {
		depth += e.delta
		if depth > max {
			max = depth
		}
	}
	return max
}
