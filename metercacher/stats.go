// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metercacher

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/approxcache"
)

// StatsSource is implemented by caches that keep their own counters.
type StatsSource interface {
	Stats() approxcache.Stats
}

type statsCollector struct {
	source StatsSource

	size    *prometheus.Desc
	maxSize *prometheus.Desc
	hits    *prometheus.Desc
	misses  *prometheus.Desc
	reused  *prometheus.Desc
	evicted *prometheus.Desc
}

// NewStatsCollector exports the counters of source on every scrape. The
// counters drop back to zero when the cache is flushed.
func NewStatsCollector(namespace string, source StatsSource) prometheus.Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &statsCollector{
		source:  source,
		size:    desc("size", "number of queued keys"),
		maxSize: desc("max_size", "configured capacity"),
		hits:    desc("hits_total", "number of successful lookups"),
		misses:  desc("misses_total", "number of failed lookups"),
		reused:  desc("reused_total", "number of entries promoted by touch or put"),
		evicted: desc("evicted_total", "number of entries evicted to make room"),
	}
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.maxSize
	ch <- c.hits
	ch <- c.misses
	ch <- c.reused
	ch <- c.evicted
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.Size))
	ch <- prometheus.MustNewConstMetric(c.maxSize, prometheus.GaugeValue, float64(s.MaxSize))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.reused, prometheus.CounterValue, float64(s.Reused))
	ch <- prometheus.MustNewConstMetric(c.evicted, prometheus.CounterValue, float64(s.Evicted))
}
