package authtoken

import (
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tokenkit/pkg/config"
	"github.com/dmitrymomot/tokenkit/pkg/jwt"
	"github.com/dmitrymomot/tokenkit/pkg/revocation"
)

// Config is the environment driven setup of token issuance and verification.
type Config struct {
	SigningAlgorithm   string        `env:"AUTH_SIGNING_ALGORITHM" envDefault:"HS256"`
	SigningSecret      string        `env:"AUTH_SIGNING_SECRET"`
	KeyringFile        string        `env:"AUTH_KEYRING_FILE"`
	KeyringCacheTTL    time.Duration `env:"AUTH_KEYRING_CACHE_TTL" envDefault:"5m"`
	SessionTTL         time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`
	ClockTolerance     time.Duration `env:"AUTH_CLOCK_TOLERANCE" envDefault:"0s"`
	AllowQueryToken    bool          `env:"AUTH_ALLOW_QUERY_TOKEN" envDefault:"true"`
	RevocationTimeout  time.Duration `env:"AUTH_REVOCATION_TIMEOUT" envDefault:"500ms"`
	RevocationFailOpen bool          `env:"AUTH_REVOCATION_FAIL_OPEN" envDefault:"false"`

	Store revocation.StoreConfig
}

// LoadConfig reads Config from the environment and the optional env files.
func LoadConfig(envFiles ...string) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, envFiles...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SigningConfig resolves the deployment wide signing config. A bad
// algorithm or an empty secret is a configuration error.
func (c Config) SigningConfig() (jwt.SigningConfig, error) {
	return jwt.ResolveSigningConfig(c.SigningAlgorithm, c.SigningSecret)
}

// Keyring builds the keyring described by c: the YAML file when KeyringFile
// is set, cached for KeyringCacheTTL, otherwise a single deployment config.
func (c Config) Keyring() (Keyring, error) {
	if c.KeyringFile == "" {
		cfg, err := c.SigningConfig()
		if err != nil {
			return nil, err
		}
		return NewSingleKeyring(cfg), nil
	}

	static, err := LoadKeyringFile(c.KeyringFile)
	if err != nil {
		return nil, err
	}
	if c.SigningSecret != "" && static.Default.IsZero() {
		if static.Default, err = c.SigningConfig(); err != nil {
			return nil, err
		}
	}
	if c.KeyringCacheTTL <= 0 {
		return static, nil
	}
	return NewCachedKeyring(static, c.KeyringCacheTTL, 0), nil
}

// SessionOptions returns the sign options that apply SessionTTL.
func (c Config) SessionOptions() []jwt.SignOption {
	if c.SessionTTL <= 0 {
		return nil
	}
	return []jwt.SignOption{jwt.WithExpiresIn(c.SessionTTL)}
}

// LedgerOptions returns the ledger options implied by c.
func (c Config) LedgerOptions(log *slog.Logger) []revocation.Option {
	return []revocation.Option{
		revocation.WithTimeout(c.RevocationTimeout),
		revocation.WithLogger(log),
	}
}

// FailurePolicy returns FailOpen only when RevocationFailOpen is set.
func (c Config) FailurePolicy() FailurePolicy {
	if c.RevocationFailOpen {
		return FailOpen
	}
	return FailClosed
}

// VerifierOptions returns the verifier options implied by c.
func (c Config) VerifierOptions(log *slog.Logger) []VerifierOption {
	opts := []VerifierOption{
		WithFailurePolicy(c.FailurePolicy()),
		WithExcludeQuery(!c.AllowQueryToken),
		WithVerifierLogger(log),
	}
	if c.ClockTolerance > 0 {
		opts = append(opts, WithVerifyOptions(jwt.WithClockTolerance(c.ClockTolerance)))
	}
	return opts
}

// Validate reports configuration that can never verify a token.
func (c Config) Validate() error {
	if c.KeyringFile == "" && c.SigningSecret == "" {
		return errors.Join(jwt.ErrMissingSigningKey, errors.New("set AUTH_SIGNING_SECRET or AUTH_KEYRING_FILE"))
	}
	if c.SigningSecret != "" {
		if _, err := c.SigningConfig(); err != nil {
			return err
		}
	}
	return nil
}
