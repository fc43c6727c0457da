// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metercacher

import (
	"errors"

	"github.com/luxfi/metric"
)

const (
	resultLabel = "result"
	hitResult   = "hit"
	missResult  = "miss"
)

var (
	resultLabels = []string{resultLabel}
	hitLabels    = metric.Labels{
		resultLabel: hitResult,
	}
	missLabels = metric.Labels{
		resultLabel: missResult,
	}
)

type cacheMetrics struct {
	getCount metric.CounterVec
	getTime  metric.CounterVec

	putCount metric.Counter
	putTime  metric.Counter

	touchCount metric.Counter

	len           metric.Gauge
	portionFilled metric.Gauge
}

func newMetrics(
	namespace string,
	registry metric.Registry,
) (*cacheMetrics, error) {
	m := &cacheMetrics{
		getCount: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "get_count",
				Help:      "number of get calls",
			},
			resultLabels,
		),
		getTime: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "get_time",
				Help:      "time spent (ns) in get calls",
			},
			resultLabels,
		),
		putCount: metric.NewCounter(metric.CounterOpts{
			Namespace: namespace,
			Name:      "put_count",
			Help:      "number of put calls",
		}),
		putTime: metric.NewCounter(metric.CounterOpts{
			Namespace: namespace,
			Name:      "put_time",
			Help:      "time spent (ns) in put calls",
		}),
		touchCount: metric.NewCounter(metric.CounterOpts{
			Namespace: namespace,
			Name:      "touch_count",
			Help:      "number of touch calls",
		}),
		len: metric.NewGauge(metric.GaugeOpts{
			Namespace: namespace,
			Name:      "len",
			Help:      "number of entries",
		}),
		portionFilled: metric.NewGauge(metric.GaugeOpts{
			Namespace: namespace,
			Name:      "portion_filled",
			Help:      "fraction of cache filled",
		}),
	}
	return m, errors.Join(
		registry.Register(metric.AsCollector(m.getCount)),
		registry.Register(metric.AsCollector(m.getTime)),
		registry.Register(metric.AsCollector(m.putCount)),
		registry.Register(metric.AsCollector(m.putTime)),
		registry.Register(metric.AsCollector(m.touchCount)),
		registry.Register(metric.AsCollector(m.len)),
		registry.Register(metric.AsCollector(m.portionFilled)),
	)
}
