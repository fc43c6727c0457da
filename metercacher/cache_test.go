package metercacher

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/approxcache/approx"
	"github.com/luxfi/metric"
)

func TestMeteredCache(t *testing.T) {
	require := require.New(t)

	inner, err := approx.New[string, int](2)
	require.NoError(err)

	registry := metric.NewRegistry()
	cache, err := New[string, int]("test", registry, inner)
	require.NoError(err)

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Touch("a")
	cache.Put("c", 3)

	_, ok := cache.Get("a")
	require.True(ok)
	_, ok = cache.Get("b")
	require.False(ok)
	_, ok = cache.Get("missing")
	require.False(ok)

	m := cache.metrics
	require.Equal(3.0, testutil.ToFloat64(metric.AsCollector(m.putCount)))
	require.Equal(1.0, testutil.ToFloat64(metric.AsCollector(m.touchCount)))
	require.Equal(1.0, testutil.ToFloat64(metric.AsCollector(m.getCount.With(hitLabels))))
	require.Equal(2.0, testutil.ToFloat64(metric.AsCollector(m.getCount.With(missLabels))))
	require.Equal(2.0, testutil.ToFloat64(metric.AsCollector(m.len)))
	require.Equal(1.0, testutil.ToFloat64(metric.AsCollector(m.portionFilled)))

	expected := `
# HELP test_get_count number of get calls
# TYPE test_get_count counter
test_get_count{result="hit"} 1
test_get_count{result="miss"} 2
# HELP test_put_count number of put calls
# TYPE test_put_count counter
test_put_count 3
`
	require.NoError(testutil.GatherAndCompare(
		registry,
		strings.NewReader(expected),
		"test_get_count",
		"test_put_count",
	))

	cache.Flush()
	require.Zero(testutil.ToFloat64(metric.AsCollector(m.len)))
	require.Zero(testutil.ToFloat64(metric.AsCollector(m.portionFilled)))
	require.Zero(inner.Len())
}

func TestDuplicateRegistration(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	first, err := approx.New[string, int](2)
	require.NoError(err)
	_, err = New[string, int]("dup", registry, first)
	require.NoError(err)

	second, err := approx.New[string, int](2)
	require.NoError(err)
	cache, err := New[string, int]("dup", registry, second)
	require.Error(err)
	require.NotNil(cache)

	cache.Put("a", 1)
	v, ok := cache.Get("a")
	require.True(ok)
	require.Equal(1, v)
}

func TestStatsCollector(t *testing.T) {
	require := require.New(t)

	cache, err := approx.New[string, int](2)
	require.NoError(err)
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)
	cache.Put("c", 4)
	cache.Get("c")
	cache.Get("a")

	collector := NewStatsCollector("cfg", cache)
	require.Equal(6, testutil.CollectAndCount(collector))

	expected := `
# HELP cfg_evicted_total number of entries evicted to make room
# TYPE cfg_evicted_total counter
cfg_evicted_total 1
# HELP cfg_hits_total number of successful lookups
# TYPE cfg_hits_total counter
cfg_hits_total 1
# HELP cfg_max_size configured capacity
# TYPE cfg_max_size gauge
cfg_max_size 2
# HELP cfg_reused_total number of entries promoted by touch or put
# TYPE cfg_reused_total counter
cfg_reused_total 1
# HELP cfg_size number of queued keys
# TYPE cfg_size gauge
cfg_size 2
`
	require.NoError(testutil.CollectAndCompare(
		collector,
		strings.NewReader(expected),
		"cfg_evicted_total",
		"cfg_hits_total",
		"cfg_max_size",
		"cfg_reused_total",
		"cfg_size",
	))

	registry := metric.NewRegistry()
	require.NoError(registry.Register(collector))
}
