package authtoken_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tokenkit/pkg/authtoken"
	"github.com/dmitrymomot/tokenkit/pkg/jwt"
	"github.com/dmitrymomot/tokenkit/pkg/revocation"
)

var issued = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *clock { return &clock{now: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func hs256(t *testing.T) jwt.SigningConfig {
	t.Helper()
	cfg, err := jwt.ResolveSigningConfig("HS256", "s3cret")
	require.NoError(t, err)
	return cfg
}

// newLedger returns a ledger over a memory store that shares clk.
func newLedger(t *testing.T, clk *clock) *revocation.Ledger {
	t.Helper()
	store := revocation.NewMemoryStore(revocation.WithMemoryClock(clk.Now), revocation.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })
	return revocation.New(store, revocation.WithClock(clk.Now))
}

var errConnRefused = errors.New("dial tcp 10.0.0.1:6379: connection refused")

// downStore fails every call like an unreachable server.
type downStore struct{}

func (downStore) SetWithTTL(context.Context, string, string, time.Duration) error { return errConnRefused }

func (downStore) Get(context.Context, string) (string, bool, error) { return "", false, errConnRefused }

// countingKeyring records how often each tenant was looked up.
type countingKeyring struct {
	mu    sync.Mutex
	calls map[string]int
	next  authtoken.Keyring
}

func newCountingKeyring(next authtoken.Keyring) *countingKeyring {
	return &countingKeyring{calls: map[string]int{}, next: next}
}

func (k *countingKeyring) SigningConfig(ctx context.Context, tenantID string) (jwt.SigningConfig, error) {
	k.mu.Lock()
	k.calls[tenantID]++
	k.mu.Unlock()
	return k.next.SigningConfig(ctx, tenantID)
}

func (k *countingKeyring) Calls(tenantID string) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.calls[tenantID]
}
