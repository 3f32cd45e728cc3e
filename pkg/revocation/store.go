package revocation

import (
	"context"
	"time"
)

// Store is the key value backend of a Ledger.
//
// Implementations must expire keys after ttl and must return transport
// failures as errors, never as a missing key.
type Store interface {
	// SetWithTTL stores value under key, replacing any existing record and its expiry.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the live value under key, or found=false if there is none.
	Get(ctx context.Context, key string) (value string, found bool, err error)
}
