package authtoken

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
	"github.com/dmitrymomot/tokenkit/pkg/logger"
	"github.com/dmitrymomot/tokenkit/pkg/revocation"
)

// FailurePolicy decides what Verify does when the revocation ledger cannot answer.
type FailurePolicy int

const (
	// FailClosed rejects the token with an error matching revocation.ErrStoreUnavailable.
	FailClosed FailurePolicy = iota
	// FailOpen accepts the token and logs a warning.
	FailOpen
)

func (p FailurePolicy) String() string {
	if p == FailOpen {
		return "fail_open"
	}
	return "fail_closed"
}

// Verifier authenticates inbound tokens. It is safe for concurrent use.
type Verifier struct {
	keyring      Keyring
	ledger       *revocation.Ledger
	policy       FailurePolicy
	excludeQuery bool
	verifyOpts   []jwt.VerifyOption
	now          func() time.Time
	logger       *slog.Logger
	metrics      *Metrics
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithFailurePolicy sets the behaviour when the ledger is unreachable. FailClosed is the default.
func WithFailurePolicy(p FailurePolicy) VerifierOption {
	return func(v *Verifier) { v.policy = p }
}

// WithExcludeQuery stops VerifyRequest from reading the accessToken query
// parameter. Use it on routes where URLs end up in logs.
func WithExcludeQuery(exclude bool) VerifierOption {
	return func(v *Verifier) { v.excludeQuery = exclude }
}

// WithVerifyOptions adds codec expectations such as an audience or a clock tolerance.
func WithVerifyOptions(opts ...jwt.VerifyOption) VerifierOption {
	return func(v *Verifier) { v.verifyOpts = append(v.verifyOpts, opts...) }
}

// WithVerifierClock sets the time exp and nbf are checked against.
func WithVerifierClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

// WithVerifierLogger sets the logger. Nil keeps the discard logger.
func WithVerifierLogger(log *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if log != nil {
			v.logger = log
		}
	}
}

// WithMetrics records outcomes in m. Nil disables metrics.
func WithMetrics(m *Metrics) VerifierOption {
	return func(v *Verifier) { v.metrics = m }
}

// NewVerifier creates a verifier. It panics if keyring or ledger is nil.
func NewVerifier(keyring Keyring, ledger *revocation.Ledger, opts ...VerifierOption) *Verifier {
	if keyring == nil {
		panic("authtoken: nil keyring")
	}
	if ledger == nil {
		panic("authtoken: nil revocation ledger")
	}
	v := &Verifier{
		keyring: keyring,
		ledger:  ledger,
		policy:  FailClosed,
		now:     time.Now,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With(logger.Component("authtoken"))
	return v
}

// Verify authenticates token and returns its claims.
//
// The issuer is read from the unverified payload only to pick the tenant's
// SigningConfig; the signature is then checked with that config and iss must
// match it. Tokens without a jti are rejected because they cannot be revoked.
func (v *Verifier) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	start := time.Now()
	claims, result, err := v.verify(ctx, token)
	v.metrics.observeVerification(result, time.Since(start))
	return claims, err
}

func (v *Verifier) verify(ctx context.Context, token string) (*jwt.Claims, string, error) {
	hint, err := jwt.Decode(token)
	if err != nil {
		return nil, ResultOf(err), err
	}

	cfg, err := v.keyring.SigningConfig(ctx, hint.Issuer)
	if err != nil {
		v.logger.DebugContext(ctx, "no signing config for token issuer", logger.TenantID(hint.Issuer), logger.Error(err))
		return nil, ResultOf(err), err
	}

	opts := slices.Clone(v.verifyOpts)
	opts = append(opts, jwt.WithRequiredTokenID())
	if hint.Issuer != "" {
		opts = append(opts, jwt.WithExpectedIssuer(hint.Issuer))
	}

	claims, err := jwt.Verify(token, cfg, v.now(), opts...)
	if err != nil {
		return nil, ResultOf(err), err
	}

	if err := v.ledger.Check(ctx, claims.ID); err != nil {
		if v.policy == FailOpen && errors.Is(err, revocation.ErrStoreUnavailable) {
			v.logger.WarnContext(ctx, "accepting token without revocation check",
				logger.TokenID(claims.ID),
				logger.TenantID(claims.Issuer),
				logger.UserID(claims.Subject),
				logger.Error(err),
			)
			return claims, ResultAcceptedFailOpen, nil
		}
		if errors.Is(err, revocation.ErrTokenRevoked) {
			v.logger.InfoContext(ctx, "rejected revoked token", logger.TokenID(claims.ID), logger.TenantID(claims.Issuer))
		}
		return nil, ResultOf(err), err
	}

	return claims, ResultAccepted, nil
}

// VerifyRequest extracts the token from r and verifies it. A request without
// a token fails with jwt.ErrMissingToken.
func (v *Verifier) VerifyRequest(r *http.Request) (string, *jwt.Claims, error) {
	token, ok := jwt.ExtractFromRequest(r, v.excludeQuery)
	if !ok {
		v.metrics.countVerification(ResultMissing)
		return "", nil, jwt.ErrMissingToken
	}
	claims, err := v.Verify(r.Context(), token)
	if err != nil {
		return token, nil, err
	}
	return token, claims, nil
}

// Revoke denylists verified claims for the rest of their lifetime.
func (v *Verifier) Revoke(ctx context.Context, claims *jwt.Claims) error {
	err := v.ledger.RevokeClaims(ctx, claims, v.now())
	v.metrics.observeRevocation(err)
	return err
}

// RevokeToken verifies token and revokes it. Revoking an already revoked
// token succeeds.
func (v *Verifier) RevokeToken(ctx context.Context, token string) error {
	claims, err := v.Verify(ctx, token)
	if errors.Is(err, revocation.ErrTokenRevoked) {
		return nil
	}
	if err != nil {
		return err
	}
	return v.Revoke(ctx, claims)
}
