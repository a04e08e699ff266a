// Package cancelset is the worker-side process-wide set of cancelled job
// IDs, shared across every concurrent /crack-range request (spec section
// 4.10).
package cancelset

import "sync"

// Registry is an unbounded, monotonically growing set of cancelled job IDs.
// A single mutex protects it; that is sufficient given the coarse access
// frequency (every CANCELLATION_CHECK_EVERY inner iterations per executor,
// plus one write per /cancel-job call). Not persisted — a worker restart
// forgets all cancellations, matching spec section 1's Non-goals.
type Registry struct {
	mu        sync.Mutex
	cancelled map[string]struct{}
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{cancelled: make(map[string]struct{})}
}

// Cancel idempotently marks jobID as cancelled.
func (r *Registry) Cancel(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled[jobID] = struct{}{}
}

// IsCancelled reports whether jobID has been cancelled.
func (r *Registry) IsCancelled(jobID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.cancelled[jobID]
	return ok
}
