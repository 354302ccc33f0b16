package layout

import (
	"sort"
	"strings"
	"sync"

	"github.com/kahu/roadmap/pkg/types"
)

// Memo caches the most recent layout keyed by (item-set version,
// filter, zoom, override) so unrelated UI events do not force a
// recomputation. The caller bumps the version whenever the item set
// changes; results are immutable snapshots, so handing the cached
// value back is always safe.
type Memo struct {
	Engine *Engine

	mu     sync.Mutex
	valid  bool
	key    memoKey
	result types.LayoutResult
}

type memoKey struct {
	version  uint64
	filter   string
	zoom     types.ZoomLevel
	override string
}

// Layout returns the cached result when the key matches the previous
// call and recomputes otherwise.
func (m *Memo) Layout(version uint64, items []types.TimelineItem, filter types.StatusFilter, zoom types.ZoomLevel, overrideEndDate string) types.LayoutResult {
	key := memoKey{version: version, filter: filterKey(filter), zoom: zoom, override: overrideEndDate}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.key == key {
		m.Engine.Metrics.RecordMemo(true)
		return m.result
	}
	m.Engine.Metrics.RecordMemo(false)

	m.result = m.Engine.Layout(items, filter, zoom, overrideEndDate)
	m.key = key
	m.valid = true
	return m.result
}

// Invalidate drops the cached result.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	m.valid = false
	m.mu.Unlock()
}

// filterKey canonicalizes a status filter into a comparable string:
// the sorted list of visible tags.
func filterKey(f types.StatusFilter) string {
	shown := make([]string, 0, len(f))
	for tag, on := range f {
		if on {
			shown = append(shown, string(tag))
		}
	}
	sort.Strings(shown)
	return strings.Join(shown, ",")
}
