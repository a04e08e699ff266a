// Package registry holds the ordered worker fleet, one circuit breaker per
// worker, and a round-robin picker filtered by breaker availability
// (spec section 4.4).
package registry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NoaAzoulay/passwords-cracker/internal/breaker"
)

var picksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "mdcrack",
		Subsystem: "registry",
		Name:      "picks_total",
		Help:      "Times pick_next selected this worker.",
	},
	[]string{"worker"},
)

// Registry is the shared, concurrency-safe worker fleet. It is constructed
// once by the driver and shared across every Scheduler.
type Registry struct {
	mu       sync.Mutex
	urls     []string
	breakers map[string]*breaker.Breaker
	cursor   int
}

// New constructs a Registry over the given ordered worker URLs, one breaker
// per URL using cfg.
func New(urls []string, cfg breaker.Config) *Registry {
	r := &Registry{
		urls:     append([]string(nil), urls...),
		breakers: make(map[string]*breaker.Breaker, len(urls)),
	}
	for _, u := range urls {
		r.breakers[u] = breaker.New(u, cfg)
	}
	return r
}

// PickNext advances the round-robin cursor and returns the next URL whose
// breaker is available, scanning at most len(urls) entries. The cursor
// advances even when a URL is skipped, spreading future load. Returns ""
// and false if no worker is currently available.
func (r *Registry) PickNext() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.urls)
	if n == 0 {
		return "", false
	}
	for i := 0; i < n; i++ {
		url := r.urls[r.cursor]
		r.cursor = (r.cursor + 1) % n
		if !r.breakers[url].IsUnavailable() {
			picksTotal.WithLabelValues(url).Inc()
			return url, true
		}
	}
	return "", false
}

// Available returns a snapshot of worker URLs whose breakers currently
// report available.
func (r *Registry) Available() []string {
	r.mu.Lock()
	urls := append([]string(nil), r.urls...)
	r.mu.Unlock()

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !r.breakers[u].IsUnavailable() {
			out = append(out, u)
		}
	}
	return out
}

// All returns a snapshot of every worker URL regardless of breaker state.
func (r *Registry) All() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

// Breaker returns the breaker for a URL. Panics if url was not part of the
// registry's original worker list — a programmer error, not a runtime one.
func (r *Registry) Breaker(url string) *breaker.Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.breakers[url]
	if !ok {
		panic("registry: unknown worker url: " + url)
	}
	return b
}
