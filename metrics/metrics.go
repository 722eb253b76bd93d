package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const maxLatencyMicros = int64(60 * time.Second / time.Microsecond)

// RouteLatency summarizes the recorded latencies of one route
type RouteLatency struct {
	Route string  `json:"route"`
	Count int64   `json:"count"`
	P50Ms float64 `json:"p50Ms"`
	P95Ms float64 `json:"p95Ms"`
	P99Ms float64 `json:"p99Ms"`
	MaxMs float64 `json:"maxMs"`
}

// Registry keeps one latency histogram per route
type Registry struct {
	mu     sync.Mutex
	routes map[string]*hdrhistogram.Histogram
}

func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]*hdrhistogram.Histogram)}
}

// Record adds one observation for route. Values beyond a minute are clamped.
func (r *Registry) Record(route string, d time.Duration) {
	v := d.Microseconds()
	if v < 1 {
		v = 1
	}
	if v > maxLatencyMicros {
		v = maxLatencyMicros
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.routes[route]
	if !ok {
		h = hdrhistogram.New(1, maxLatencyMicros, 3)
		r.routes[route] = h
	}
	_ = h.RecordValue(v)
}

// Snapshot returns the summaries sorted by route.
func (r *Registry) Snapshot() []RouteLatency {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RouteLatency, 0, len(r.routes))
	for route, h := range r.routes {
		out = append(out, RouteLatency{
			Route: route,
			Count: h.TotalCount(),
			P50Ms: toMillis(h.ValueAtQuantile(50)),
			P95Ms: toMillis(h.ValueAtQuantile(95)),
			P99Ms: toMillis(h.ValueAtQuantile(99)),
			MaxMs: toMillis(h.Max()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

func toMillis(micros int64) float64 {
	return float64(micros) / 1000
}
