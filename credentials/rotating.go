package credentials

import "sync/atomic"

// Rotating is a thread-safe holder for credentials that are replaced over
// time, such as instance role credentials refreshed before expiry. Readers
// always observe a complete *Credentials snapshot; a concurrent Store never
// yields a torn access key / secret key pairing.
type Rotating struct {
	current atomic.Pointer[Credentials]
}

// NewRotating returns a holder seeded with initial credentials.
func NewRotating(initial *Credentials) *Rotating {
	r := &Rotating{}
	r.current.Store(initial)
	return r
}

// Get returns the current credentials snapshot. The snapshot is immutable;
// a later Update does not affect it.
func (r *Rotating) Get() *Credentials {
	return r.current.Load()
}

// Update atomically replaces the current credentials.
func (r *Rotating) Update(next *Credentials) {
	r.current.Store(next)
}

// String implements fmt.Stringer, delegating to the redacted snapshot form.
func (r *Rotating) String() string {
	return "Rotating" + r.Get().String()
}
