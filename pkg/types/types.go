// Package types defines the core domain model shared by the timeline
// layout engine and its callers.
package types

import (
	"fmt"
	"time"
)

// StatusTag classifies a roadmap item for filtering purposes only.
// Layout decisions never depend on it.
type StatusTag string

const (
	StatusPlanned    StatusTag = "planned"
	StatusInProgress StatusTag = "in-progress"
	StatusBlocked    StatusTag = "blocked"
	StatusDone       StatusTag = "done"
	StatusArchived   StatusTag = "archived"
)

// Kind distinguishes projects from tasks. Informational only.
type Kind string

const (
	KindProject Kind = "project"
	KindTask    Kind = "task"
)

// ZoomLevel selects the period bucketing algorithm and the
// pixels-per-day density of the rendered timeline.
type ZoomLevel string

const (
	ZoomWeek      ZoomLevel = "week"
	ZoomFortnight ZoomLevel = "fortnight"
	ZoomMonth     ZoomLevel = "month"
	ZoomQuarter   ZoomLevel = "quarter"
	ZoomYear      ZoomLevel = "year"
)

// ParseZoom converts a textual zoom name into a ZoomLevel.
func ParseZoom(s string) (ZoomLevel, error) {
	switch z := ZoomLevel(s); z {
	case ZoomWeek, ZoomFortnight, ZoomMonth, ZoomQuarter, ZoomYear:
		return z, nil
	}
	return "", fmt.Errorf("unknown zoom level %q", s)
}

// ItemRecord is the raw item shape delivered by the item source
// (store layer, import tooling). Dates are DD-MM-YYYY strings and are
// decoded by the engine; invalid records are dropped, never fatal.
type ItemRecord struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	StartDate string `yaml:"start_date" json:"start_date"`
	EndDate   string `yaml:"end_date" json:"end_date"`
	Status    string `yaml:"status" json:"status"`
	Kind      string `yaml:"kind" json:"kind"`
}

// TimelineItem is a decoded, date-valid roadmap item. The engine treats
// it as read-only input and never mutates it. Invariant: End is
// strictly after Start.
type TimelineItem struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status StatusTag `json:"status"`
	Kind   Kind      `json:"kind"`
}

// StatusFilter maps a status tag to its visibility. Tags absent from
// the map are hidden.
type StatusFilter map[StatusTag]bool

// DefaultStatusFilter shows everything except archived items.
func DefaultStatusFilter() StatusFilter {
	return StatusFilter{
		StatusPlanned:    true,
		StatusInProgress: true,
		StatusBlocked:    true,
		StatusDone:       true,
		StatusArchived:   false,
	}
}

// Allows reports whether items with the given tag are visible.
func (f StatusFilter) Allows(tag StatusTag) bool { return f[tag] }

// TimelineExtent is the visible [Min, Max] date window. Derived on
// every recomputation, never stored.
type TimelineExtent struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// Period is one calendar bucket of the timeline header. LeftPx and
// WidthPx are filled in by the layout facade; the generator itself
// produces only the calendar fields.
type Period struct {
	Anchor  time.Time `json:"anchor"`
	Label   string    `json:"label"`
	Days    int       `json:"days"`
	LeftPx  float64   `json:"left_px"`
	WidthPx float64   `json:"width_px"`
}

// Row is an ordered group of items whose [Start, End) intervals are
// pairwise disjoint. Rows are rebuilt from scratch on every layout
// call and carry no identity across calls.
type Row struct {
	Items []TimelineItem `json:"items"`
}

// ItemRect is the pixel placement of a single item.
type ItemRect struct {
	ItemID   string  `json:"item_id"`
	RowIndex int     `json:"row_index"`
	LeftPx   float64 `json:"left_px"`
	WidthPx  float64 `json:"width_px"`
}

// LayoutResult is the complete render model handed to the drawing
// layer: header periods, packed rows, per-item rectangles and the
// total scrollable width. It is an immutable snapshot.
type LayoutResult struct {
	Extent       TimelineExtent `json:"extent"`
	Periods      []Period       `json:"periods"`
	Rows         []Row          `json:"rows"`
	ItemRects    []ItemRect     `json:"item_rects"`
	TotalWidthPx float64        `json:"total_width_px"`
}

// Empty reports whether the result is the no-data sentinel.
func (r LayoutResult) Empty() bool {
	return len(r.Periods) == 0 && len(r.Rows) == 0
}
