package authtoken

import (
	"context"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
	"github.com/dmitrymomot/tokenkit/pkg/logger"
	"github.com/dmitrymomot/tokenkit/pkg/revocation"
)

// Service bundles issuance and verification for one deployment.
type Service struct {
	*Verifier

	keyring     Keyring
	ledger      *revocation.Ledger
	sessionOpts []jwt.SignOption
	closeStore  func() error
}

// Open wires a Service from cfg: keyring, revocation store and ledger,
// verifier and, when reg is not nil, Prometheus metrics. Call Close on shutdown.
func Open(ctx context.Context, cfg Config, log *slog.Logger, reg prometheus.Registerer) (*Service, error) {
	log = logger.Or(log)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	keyring, err := cfg.Keyring()
	if err != nil {
		return nil, err
	}

	var metrics *Metrics
	if reg != nil {
		if metrics, err = NewMetrics(reg); err != nil {
			return nil, err
		}
	}

	store, closeStore, err := revocation.Open(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}

	ledger := revocation.New(store, cfg.LedgerOptions(log)...)
	opts := append(cfg.VerifierOptions(log), WithMetrics(metrics))

	log.InfoContext(ctx, "token service ready",
		logger.Component("authtoken"),
		slog.String("revocation_store", string(cfg.Store.Driver)),
		slog.String("failure_policy", cfg.FailurePolicy().String()),
	)

	return &Service{
		Verifier:    NewVerifier(keyring, ledger, opts...),
		keyring:     keyring,
		ledger:      ledger,
		sessionOpts: cfg.SessionOptions(),
		closeStore:  closeStore,
	}, nil
}

// NewService assembles a Service from already built parts.
func NewService(keyring Keyring, ledger *revocation.Ledger, opts ...VerifierOption) *Service {
	return &Service{
		Verifier:    NewVerifier(keyring, ledger, opts...),
		keyring:     keyring,
		ledger:      ledger,
		sessionOpts: []jwt.SignOption{jwt.WithExpiresIn(DefaultSessionTTL)},
	}
}

// IssueSession signs a session token with tenant's config from the keyring.
func (s *Service) IssueSession(ctx context.Context, user User, tenant Tenant, opts ...jwt.SignOption) (string, error) {
	if tenant.ID == "" {
		return "", ErrMissingTenantID
	}
	cfg, err := s.keyring.SigningConfig(ctx, tenant.ID)
	if err != nil {
		return "", err
	}
	return SignTokenString(cfg, user, tenant, append(slices.Clone(s.sessionOpts), opts...)...)
}

// IssuePAT signs a personal access token with tenant's config. The issuer is
// pinned to tenant.ID so the token routes back to the same key.
func (s *Service) IssuePAT(ctx context.Context, user User, tenant Tenant, opts ...jwt.SignOption) (string, error) {
	if tenant.ID == "" {
		return "", ErrMissingTenantID
	}
	cfg, err := s.keyring.SigningConfig(ctx, tenant.ID)
	if err != nil {
		return "", err
	}
	return SignPATString(cfg, user, append(slices.Clone(opts), jwt.WithIssuer(tenant.ID))...)
}

// Ledger exposes the revocation ledger, e.g. to revoke a PAT by its stored ID.
func (s *Service) Ledger() *revocation.Ledger {
	return s.ledger
}

// Close releases the revocation store.
func (s *Service) Close() error {
	if s.closeStore == nil {
		return nil
	}
	return s.closeStore()
}
