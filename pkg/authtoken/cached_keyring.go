package authtoken

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tokenkit/pkg/cache"
	"github.com/dmitrymomot/tokenkit/pkg/jwt"
)

const defaultKeyringCacheSize = 1024

// CachedKeyring remembers successful lookups of another Keyring for a while.
// Concurrent misses for the same tenant share one upstream call. Failures
// are not cached.
type CachedKeyring struct {
	next  Keyring
	cache *cache.Cache[string, jwt.SigningConfig]
	group singleflight.Group
}

// NewCachedKeyring caches up to size tenants for ttl each. A non-positive
// size uses 1024.
func NewCachedKeyring(next Keyring, ttl time.Duration, size int) *CachedKeyring {
	if size <= 0 {
		size = defaultKeyringCacheSize
	}
	return &CachedKeyring{
		next:  next,
		cache: cache.New[string, jwt.SigningConfig](size, ttl),
	}
}

func (k *CachedKeyring) SigningConfig(ctx context.Context, tenantID string) (jwt.SigningConfig, error) {
	if cfg, ok := k.cache.Get(tenantID); ok {
		return cfg, nil
	}

	// The lookup is shared by every waiter, so one caller's cancellation
	// must not fail the others.
	shared := context.WithoutCancel(ctx)
	v, err, _ := k.group.Do(tenantID, func() (any, error) {
		cfg, err := k.next.SigningConfig(shared, tenantID)
		if err != nil {
			return nil, err
		}
		k.cache.Set(tenantID, cfg)
		return cfg, nil
	})
	if err != nil {
		return jwt.SigningConfig{}, err
	}
	return v.(jwt.SigningConfig), nil
}

// Invalidate drops a tenant so its next lookup reaches the wrapped keyring.
func (k *CachedKeyring) Invalidate(tenantID string) {
	k.cache.Delete(tenantID)
}

// Purge drops every cached tenant.
func (k *CachedKeyring) Purge() {
	k.cache.Purge()
}
