package profiling

import (
	"maps"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Spans are summed per frame for the overlay and observed individually into
// the span histogram.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		spanSeconds.WithLabelValues(name).Observe(d.Seconds())
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame starts a new frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot copies the totals of the current frame.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	return maps.Clone(frameTotals)
}

// TopN formats the n largest spans of the current frame, rounded to a tenth
// of a millisecond: "graphics.DrawChunks:4.2ms, meshing.BuildChunkMesh:2ms".
func TopN(n int) string {
	spans := lo.Entries(Snapshot())
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Value != spans[j].Value {
			return spans[i].Value > spans[j].Value
		}
		return spans[i].Key < spans[j].Key
	})
	if n < len(spans) {
		spans = spans[:max(n, 0)]
	}
	parts := lo.Map(spans, func(e lo.Entry[string, time.Duration], _ int) string {
		return e.Key + ":" + formatMs(e.Value)
	})
	return strings.Join(parts, ", ")
}

func formatMs(d time.Duration) string {
	ms := math.Round(float64(d.Microseconds())/100) / 10
	return strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
}
