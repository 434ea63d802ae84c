// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bsp_builds",
		Help: "The number of generated BSP trees.",
	})

	buildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bsp_build_latency",
		Help:    "The time to generate a BSP tree.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	leafQuadblocks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bsp_leaf_quadblocks",
		Help:    "The number of quadblocks per generated leaf.",
		Buckets: prometheus.LinearBuckets(1, 4, 16),
	})
)

func instrumentBuild(t *Tree, d time.Duration) {
	buildCount.Inc()
	buildLatency.Observe(d.Seconds())
	for _, l := range t.leaves {
		leafQuadblocks.Observe(float64(len(l.quadblocks)))
	}
}
