package jwt

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningConfig pairs an algorithm with the key material it interprets.
// The zero value is unusable; build one with ResolveSigningConfig or the
// family-specific constructors. A SigningConfig never changes after it is
// created and is safe to share between goroutines.
type SigningConfig struct {
	algorithm Algorithm
	secret    []byte
}

// NewSymmetricSigningConfig uses secret verbatim as the HMAC key.
func NewSymmetricSigningConfig(algorithm SymmetricAlgorithm, secret string) SigningConfig {
	return SigningConfig{
		algorithm: algorithm,
		secret:    []byte(secret),
	}
}

// NewAsymmetricSigningConfig stores a PEM encoded key. Single-line
// configuration values usually carry the PEM with literal `\n` sequences,
// which are turned back into newlines here.
func NewAsymmetricSigningConfig(algorithm AsymmetricAlgorithm, secret string) SigningConfig {
	return SigningConfig{
		algorithm: algorithm,
		secret:    []byte(strings.ReplaceAll(secret, `\n`, "\n")),
	}
}

// ResolveSigningConfig turns configured algorithm and secret strings into a
// SigningConfig. An unrecognized algorithm name is a configuration error and
// is never defaulted.
func ResolveSigningConfig(algorithm, secret string) (SigningConfig, error) {
	alg, err := ParseAlgorithm(algorithm)
	if err != nil {
		return SigningConfig{}, err
	}
	if secret == "" {
		return SigningConfig{}, ErrMissingSigningKey
	}

	switch a := alg.(type) {
	case SymmetricAlgorithm:
		return NewSymmetricSigningConfig(a, secret), nil
	case AsymmetricAlgorithm:
		return NewAsymmetricSigningConfig(a, secret), nil
	default:
		return SigningConfig{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// MustResolveSigningConfig is like ResolveSigningConfig but panics on error.
// Intended for process startup.
func MustResolveSigningConfig(algorithm, secret string) SigningConfig {
	cfg, err := ResolveSigningConfig(algorithm, secret)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve signing config: %v", err))
	}
	return cfg
}

// Algorithm returns the pinned signing algorithm.
func (c SigningConfig) Algorithm() Algorithm { return c.algorithm }

// Secret returns a copy of the raw key material.
func (c SigningConfig) Secret() []byte { return bytes.Clone(c.secret) }

// IsZero reports whether c was never initialised.
func (c SigningConfig) IsZero() bool { return c.algorithm == nil || len(c.secret) == 0 }

// String never includes the secret.
func (c SigningConfig) String() string {
	if c.algorithm == nil {
		return "SigningConfig{}"
	}
	return fmt.Sprintf("SigningConfig{algorithm=%s secret=[REDACTED]}", c.algorithm)
}

// LogValue keeps key material out of structured logs.
func (c SigningConfig) LogValue() slog.Value {
	if c.algorithm == nil {
		return slog.GroupValue()
	}
	return slog.GroupValue(
		slog.String("algorithm", c.algorithm.String()),
		slog.String("family", c.algorithm.Family().String()),
	)
}

func (c SigningConfig) method() (gojwt.SigningMethod, error) {
	if c.IsZero() {
		return nil, ErrMissingSigningKey
	}
	m := c.algorithm.signingMethod()
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, c.algorithm.String())
	}
	return m, nil
}

// signingKey returns the key golang-jwt expects for signing with c.algorithm.
func (c SigningConfig) signingKey() (any, error) {
	switch a := c.algorithm.(type) {
	case SymmetricAlgorithm:
		return c.secret, nil
	case AsymmetricAlgorithm:
		if a.isECDSA() {
			key, err := gojwt.ParseECPrivateKeyFromPEM(c.secret)
			if err != nil {
				return nil, errors.Join(ErrInvalidSigningKey, err)
			}
			return key, nil
		}
		key, err := gojwt.ParseRSAPrivateKeyFromPEM(c.secret)
		if err != nil {
			return nil, errors.Join(ErrInvalidSigningKey, err)
		}
		return key, nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// verificationKey accepts either a private key (its public half is used) or
// a public key, so verify-only deployments never hold signing material.
func (c SigningConfig) verificationKey() (any, error) {
	switch a := c.algorithm.(type) {
	case SymmetricAlgorithm:
		return c.secret, nil
	case AsymmetricAlgorithm:
		if a.isECDSA() {
			if key, err := gojwt.ParseECPrivateKeyFromPEM(c.secret); err == nil {
				return &key.PublicKey, nil
			}
			key, err := gojwt.ParseECPublicKeyFromPEM(c.secret)
			if err != nil {
				return nil, errors.Join(ErrInvalidSigningKey, err)
			}
			return key, nil
		}
		if key, err := gojwt.ParseRSAPrivateKeyFromPEM(c.secret); err == nil {
			return &key.PublicKey, nil
		}
		key, err := gojwt.ParseRSAPublicKeyFromPEM(c.secret)
		if err != nil {
			return nil, errors.Join(ErrInvalidSigningKey, err)
		}
		return key, nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}
