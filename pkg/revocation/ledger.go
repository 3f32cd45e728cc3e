package revocation

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
	"github.com/dmitrymomot/tokenkit/pkg/logger"
)

// Ledger records and checks revoked token IDs. It is safe for concurrent use
// when its Store is.
type Ledger struct {
	store   Store
	prefix  string
	timeout time.Duration
	maxTTL  time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// New creates a ledger on top of store. It panics if store is nil.
func New(store Store, opts ...Option) *Ledger {
	if store == nil {
		panic("revocation: nil store")
	}
	l := &Ledger{
		store:   store,
		prefix:  DefaultKeyPrefix,
		timeout: DefaultTimeout,
		maxTTL:  DefaultMaxTTL,
		now:     time.Now,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With(logger.Component("revocation"))
	return l
}

// Key returns the store key used for jti.
func (l *Ledger) Key(jti string) string {
	return l.prefix + jti
}

// Revoke denylists jti for validFor, rounded up to whole seconds. Revoking an
// already revoked jti refreshes its record. A non-positive validFor is a no-op
// since the token can no longer be presented. Lifetimes beyond the largest
// whole-second time.Duration (about 292 years) are clamped to it.
func (l *Ledger) Revoke(ctx context.Context, jti string, validFor time.Duration) error {
	if jti == "" {
		return ErrMissingTokenID
	}
	if validFor <= 0 {
		l.logger.DebugContext(ctx, "skipping revocation of expired token", logger.TokenID(jti))
		return nil
	}

	ttl := ceilSeconds(validFor)
	revokedAt := strconv.FormatInt(l.now().Unix(), 10)

	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	if err := l.store.SetWithTTL(ctx, l.Key(jti), revokedAt, ttl); err != nil {
		l.logger.ErrorContext(ctx, "failed to revoke token", logger.TokenID(jti), logger.Error(err))
		if errors.Is(err, ErrInvalidTTL) {
			return err
		}
		return unavailable(err)
	}

	l.logger.InfoContext(ctx, "token revoked", logger.TokenID(jti), slog.Duration("ttl", ttl))
	return nil
}

// RevokeClaims revokes a verified token for the rest of its lifetime, taken
// from its exp claim relative to now. Tokens without exp are revoked for the
// ledger's max TTL.
func (l *Ledger) RevokeClaims(ctx context.Context, claims *jwt.Claims, now time.Time) error {
	if claims == nil || claims.ID == "" {
		return ErrMissingTokenID
	}
	validFor, ok := claims.RemainingValidity(now)
	if !ok {
		validFor = l.maxTTL
	}
	return l.Revoke(ctx, claims.ID, validFor)
}

// Check returns ErrTokenRevoked if jti is denylisted, nil if it is not and an
// error matching ErrStoreUnavailable if the store could not answer.
func (l *Ledger) Check(ctx context.Context, jti string) error {
	_, revoked, err := l.RevokedAt(ctx, jti)
	if err != nil {
		return err
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// RevokedAt reports whether jti is revoked and when. The time is zero if the
// stored record cannot be parsed.
func (l *Ledger) RevokedAt(ctx context.Context, jti string) (time.Time, bool, error) {
	if jti == "" {
		return time.Time{}, false, nil
	}

	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	value, found, err := l.store.Get(ctx, l.Key(jti))
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to check token revocation", logger.TokenID(jti), logger.Error(err))
		return time.Time{}, false, unavailable(err)
	}
	if !found {
		return time.Time{}, false, nil
	}

	sec, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, true, nil
	}
	return time.Unix(sec, 0), true, nil
}

func (l *Ledger) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, l.timeout)
}

// maxTTL is the largest whole-second duration.
const maxTTL = time.Duration(math.MaxInt64) / time.Second * time.Second

func ceilSeconds(d time.Duration) time.Duration {
	if d > maxTTL {
		return maxTTL
	}
	return (d + time.Second - 1) / time.Second * time.Second
}
