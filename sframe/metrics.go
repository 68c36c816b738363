package sframe

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesRouted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "superframe",
			Subsystem: "router",
			Name:      "frames_routed_total",
			Help:      "Sub-frames published per frame type.",
		},
		[]string{"frame_type"},
	)
	unitsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "superframe",
			Subsystem: "router",
			Name:      "units_dropped_total",
			Help:      "Malformed superframe units dropped.",
		},
	)
	bytesDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "superframe",
			Subsystem: "router",
			Name:      "discarded_bytes_total",
			Help:      "Trailing bytes too short for a voice frame.",
		},
	)
	tagsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "superframe",
			Subsystem: "tagger",
			Name:      "tags_total",
			Help:      "Frame-type tags attached to the sample stream.",
		},
		[]string{"frame_type"},
	)
)

// RegisterMetrics registers the package collectors with the default
// registry. Safe to call from every constructor.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesRouted, unitsDropped, bytesDiscarded, tagsEmitted)
	})
}

func recordFrameRouted(frameType string) {
	RegisterMetrics()
	framesRouted.WithLabelValues(frameType).Inc()
}

func recordUnitDropped() {
	RegisterMetrics()
	unitsDropped.Inc()
}

func recordBytesDiscarded(n int) {
	RegisterMetrics()
	bytesDiscarded.Add(float64(n))
}

func recordTagEmitted(frameType string) {
	RegisterMetrics()
	tagsEmitted.WithLabelValues(frameType).Inc()
}
