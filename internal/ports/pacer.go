package ports

import "context"

// Pacer gates successive external calls. The core only guarantees call
// ordering; pacing policy (rate limits, spacing) is configured by the
// caller through an implementation of this interface.
type Pacer interface {
	// Wait blocks until the next call may proceed or ctx is done.
	Wait(ctx context.Context) error
}
