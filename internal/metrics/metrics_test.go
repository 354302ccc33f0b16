package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector(prometheus.NewRegistry())
}

func TestRecordLayout(t *testing.T) {
	c := newTestCollector(t)
	c.RecordLayout(0.002, 3, 14)
	c.RecordLayout(0.001, 5, 14)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.layoutsComputed))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.lastRows))
	assert.Equal(t, 14.0, testutil.ToFloat64(c.lastPeriods))
}

func TestRecordDroppedByReason(t *testing.T) {
	c := newTestCollector(t)
	c.RecordDropped(ReasonBadDate)
	c.RecordDropped(ReasonBadDate)
	c.RecordDropped(ReasonInvalidRange)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.itemsDropped.WithLabelValues(ReasonBadDate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.itemsDropped.WithLabelValues(ReasonInvalidRange)))
}

func TestRecordMemo(t *testing.T) {
	c := newTestCollector(t)
	c.RecordMemo(true)
	c.RecordMemo(true)
	c.RecordMemo(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.memoHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.memoMisses))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	require.NotPanics(t, func() {
		c.RecordLayout(0.1, 1, 1)
		c.RecordDropped(ReasonBadDate)
		c.RecordGuardTrip()
		c.RecordMemo(true)
	})
}
