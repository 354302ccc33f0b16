package extent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kahu/roadmap/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func item(id string, start, end time.Time) types.TimelineItem {
	return types.TimelineItem{ID: id, Start: start, End: end, Status: types.StatusPlanned}
}

var fixedNow = day(2025, 6, 15)

func testResolver() Resolver {
	return Resolver{Now: func() time.Time { return fixedNow }}
}

func TestResolveEmptyItemsIsDegenerate(t *testing.T) {
	ext := testResolver().Resolve(nil, types.ZoomWeek, "")
	assert.True(t, ext.Min.Equal(fixedNow))
	assert.True(t, ext.Max.Equal(fixedNow))
}

func TestResolveDefaultLookahead(t *testing.T) {
	items := []types.TimelineItem{
		item("a", day(2025, 2, 10), day(2025, 4, 1)),
		item("b", day(2025, 1, 5), day(2025, 12, 31)),
	}
	ext := testResolver().Resolve(items, types.ZoomWeek, "")
	assert.True(t, ext.Min.Equal(day(2025, 1, 5)))
	// Latest end plus twelve calendar months.
	assert.True(t, ext.Max.Equal(day(2026, 12, 31)), "got %v", ext.Max)
}

func TestResolveOverrideWins(t *testing.T) {
	items := []types.TimelineItem{item("a", day(2025, 1, 1), day(2025, 6, 1))}
	ext := testResolver().Resolve(items, types.ZoomWeek, "30-09-2025")
	assert.True(t, ext.Max.Equal(day(2025, 9, 30)))
}

func TestResolveOverrideCanTruncate(t *testing.T) {
	items := []types.TimelineItem{item("a", day(2025, 1, 1), day(2025, 12, 1))}
	ext := testResolver().Resolve(items, types.ZoomWeek, "01-03-2025")
	assert.True(t, ext.Max.Equal(day(2025, 3, 1)))
}

func TestResolveBadOverrideFallsBack(t *testing.T) {
	items := []types.TimelineItem{item("a", day(2025, 1, 1), day(2025, 12, 31))}
	ext := testResolver().Resolve(items, types.ZoomWeek, "not-a-date")
	assert.True(t, ext.Max.Equal(day(2026, 12, 31)), "got %v", ext.Max)
}

func TestResolveMonthZoomSnapsToMonthBounds(t *testing.T) {
	items := []types.TimelineItem{item("a", day(2025, 1, 15), day(2025, 2, 20))}
	ext := testResolver().Resolve(items, types.ZoomMonth, "10-03-2025")
	assert.True(t, ext.Min.Equal(day(2025, 1, 1)))
	wantMax := day(2025, 4, 1).Add(-time.Millisecond) // 31 Mar 23:59:59.999
	assert.True(t, ext.Max.Equal(wantMax), "got %v", ext.Max)
}

func TestResolveOtherZoomsDoNotSnap(t *testing.T) {
	items := []types.TimelineItem{item("a", day(2025, 1, 15), day(2025, 2, 20))}
	for _, zoom := range []types.ZoomLevel{types.ZoomWeek, types.ZoomFortnight, types.ZoomQuarter, types.ZoomYear} {
		ext := testResolver().Resolve(items, zoom, "10-03-2025")
		assert.True(t, ext.Min.Equal(day(2025, 1, 15)), "zoom %s", zoom)
		assert.True(t, ext.Max.Equal(day(2025, 3, 10)), "zoom %s", zoom)
	}
}

func TestResolveIgnoresStatus(t *testing.T) {
	// Bounds span all items, archived included; the status filter is
	// applied downstream and must never move the header.
	items := []types.TimelineItem{
		item("a", day(2025, 3, 1), day(2025, 4, 1)),
		{ID: "b", Start: day(2024, 1, 1), End: day(2024, 2, 1), Status: types.StatusArchived},
	}
	ext := testResolver().Resolve(items, types.ZoomWeek, "")
	assert.True(t, ext.Min.Equal(day(2024, 1, 1)))
}
