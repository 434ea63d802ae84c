// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vis_generate_latency",
		Help:    "The time to generate a visibility matrix.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	raysCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vis_rays",
		Help: "The number of rays traced between sample points.",
	})

	leafPairs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vis_leaf_pairs",
		Help: "The number of evaluated leaf pairs by outcome.",
	}, []string{"result"})
)

const (
	pairVisible  = "visible"
	pairHidden   = "hidden"
	pairNearClip = "nearclip"
)
