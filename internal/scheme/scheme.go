// Package scheme defines the PasswordScheme contract: a pure, deterministic
// bijection between an integer index and a plaintext candidate over an
// inclusive bounds range (spec section 4.1).
package scheme

import "fmt"

// Scheme is a total injection from [Lo, Hi] onto a set of plaintexts.
// Implementations must be pure and safe for concurrent use — a worker may
// call IndexToPassword from many goroutines at once without synchronization.
type Scheme interface {
	// IndexToPassword maps an index in [Lo, Hi] to its plaintext candidate.
	// It returns an error if index is outside bounds.
	IndexToPassword(index int64) (string, error)
	// Bounds returns the inclusive keyspace range [lo, hi], lo <= hi.
	Bounds() (lo, hi int64)
}

// ErrOutOfBounds is returned by IndexToPassword for an out-of-range index.
type ErrOutOfBounds struct {
	Index   int64
	Lo, Hi  int64
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("index %d outside bounds [%d, %d]", e.Index, e.Lo, e.Hi)
}

// Registry is a name -> constructor lookup, the Go stand-in for the
// original factory-over-scheme-name dispatch (spec section 9).
type Registry struct {
	schemes map[string]func() Scheme
}

// NewRegistry constructs a Registry pre-populated with the built-in schemes.
func NewRegistry() *Registry {
	r := &Registry{schemes: make(map[string]func() Scheme)}
	r.Register(NameILPhone05xDash, func() Scheme { return NewILPhone05xDash() })
	return r
}

// Register adds or replaces a named scheme constructor.
func (r *Registry) Register(name string, ctor func() Scheme) {
	r.schemes[name] = ctor
}

// New constructs the named scheme, or an error if the name is unknown.
func (r *Registry) New(name string) (Scheme, error) {
	ctor, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown password scheme: %q", name)
	}
	return ctor(), nil
}
