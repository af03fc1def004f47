package profiling

import (
	"github.com/prometheus/client_golang/prometheus"
)

var registry = prometheus.NewRegistry()

var (
	spanSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "minivoxel",
		Name:      "span_duration_seconds",
		Help:      "Duration of tracked spans.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14),
	}, []string{"span"})

	remeshTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "minivoxel",
		Name:      "chunk_remesh_total",
		Help:      "Chunk meshes rebuilt.",
	})

	editTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minivoxel",
		Name:      "block_edit_total",
		Help:      "Block edits applied to the world.",
	}, []string{"kind"})

	loadedChunks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "minivoxel",
		Name:      "loaded_chunks",
		Help:      "Chunks currently held by the world.",
	})
)

func init() {
	registry.MustRegister(spanSeconds, remeshTotal, editTotal, loadedChunks)
}

// Registry returns the registry holding every metric of this package.
func Registry() *prometheus.Registry {
	return registry
}

// CountRemesh records n rebuilt chunk meshes.
func CountRemesh(n int) {
	remeshTotal.Add(float64(n))
}

// CountEdit records one applied edit of the given kind ("destroy", "place").
func CountEdit(kind string) {
	editTotal.WithLabelValues(kind).Inc()
}

func SetLoadedChunks(n int) {
	loadedChunks.Set(float64(n))
}
