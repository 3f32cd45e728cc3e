// Package cache provides a generic, thread-safe LRU cache whose entries also
// expire after a fixed time to live.
//
// The keyring cache in authtoken uses it to avoid hitting the tenant store on
// every verified request while still picking up rotated signing keys:
//
//	c := cache.New[string, jwt.SigningConfig](1024, 5*time.Minute)
//	c.Set(tenantID, cfg)
//	if cfg, ok := c.Get(tenantID); ok {
//		// fresh hit
//	}
//
// Capacity bounds memory; the least recently used entry is evicted when it is
// exceeded. Expired entries are dropped lazily on access. A TTL of zero keeps
// entries until they are evicted.
package cache
