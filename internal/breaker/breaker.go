// Package breaker implements a per-worker circuit breaker with a lazy-reset
// open window (spec section 4.3).
package breaker

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stateGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "mdcrack",
			Subsystem: "breaker",
			Name:      "open",
			Help:      "1 if the worker's breaker is currently open, 0 otherwise.",
		},
		[]string{"worker"},
	)
	failuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mdcrack",
			Subsystem: "breaker",
			Name:      "failures_total",
			Help:      "Transport/protocol failures recorded against a worker.",
		},
		[]string{"worker"},
	)
)

// Config controls the breaker's failure threshold and open-window duration.
type Config struct {
	FailureThreshold int
	OpenDuration     time.Duration
}

// DefaultConfig returns the default breaker parameters.
func DefaultConfig() Config {
	return Config{FailureThreshold: 3, OpenDuration: 10 * time.Second}
}

// Breaker is a single worker's failure-count + open-until gate.
//
// Thread-safety: a Breaker is shared by every Scheduler goroutine dispatching
// to its worker, so all state transitions are mutex-guarded.
type Breaker struct {
	mu        sync.Mutex
	cfg       Config
	label     string
	failures  int
	openUntil time.Time // zero value means "not open"
}

// New constructs a Breaker for the named worker (used as a metrics label).
func New(workerLabel string, cfg Config) *Breaker {
	return &Breaker{cfg: cfg, label: workerLabel}
}

// RecordSuccess zeroes the failure counter and clears the open window.
// NOT_FOUND from a worker is a logical success and must call this, per
// spec section 4.3's design note — only transport/protocol failures count
// as failures.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.openUntil = time.Time{}
	stateGauge.WithLabelValues(b.label).Set(0)
}

// RecordFailure increments the failure counter and opens the breaker once
// the threshold is reached.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	failuresTotal.WithLabelValues(b.label).Inc()
	if b.failures >= b.cfg.FailureThreshold {
		b.openUntil = time.Now().Add(b.cfg.OpenDuration)
		stateGauge.WithLabelValues(b.label).Set(1)
	}
}

// IsUnavailable reports whether the breaker is currently open. If the open
// window has elapsed it performs the lazy reset (clear failures, clear
// open-until) and reports available.
func (b *Breaker) IsUnavailable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.openUntil.IsZero() {
		return false
	}
	if time.Now().Before(b.openUntil) {
		return true
	}
	b.failures = 0
	b.openUntil = time.Time{}
	stateGauge.WithLabelValues(b.label).Set(0)
	return false
}

// IsOpen is an alias for IsUnavailable, matching spec section 4.3's naming.
func (b *Breaker) IsOpen() bool { return b.IsUnavailable() }
