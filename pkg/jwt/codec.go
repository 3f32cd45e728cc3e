package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Sign serialises payload and the registered claims from opts into a
// compact token signed with cfg. Registered claim names are rejected in
// payload so they can only come from options.
func Sign(cfg SigningConfig, payload map[string]any, opts ...SignOption) (string, error) {
	method, err := cfg.method()
	if err != nil {
		return "", err
	}

	for name := range payload {
		if isRegisteredClaim(name) {
			return "", fmt.Errorf("%w: payload sets registered claim %q", ErrInvalidClaims, name)
		}
	}

	key, err := cfg.signingKey()
	if err != nil {
		return "", err
	}

	o := &signOptions{}
	for _, opt := range opts {
		opt(o)
	}

	claims := Claims{StandardClaims: o.resolve(), Custom: payload}
	token, err := gojwt.NewWithClaims(method, claims.toMap()).SignedString(key)
	if err != nil {
		if errors.Is(err, gojwt.ErrInvalidKey) || errors.Is(err, gojwt.ErrInvalidKeyType) {
			return "", errors.Join(ErrInvalidSigningKey, err)
		}
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// Verify checks the signature of token against cfg and validates its time
// claims at now. Only cfg's algorithm is accepted; the alg header of the
// token is never trusted to pick a different one.
//
// Token problems are reported as *TokenInvalidError. A broken cfg is
// reported as a configuration error instead.
func Verify(token string, cfg SigningConfig, now time.Time, opts ...VerifyOption) (*Claims, error) {
	method, err := cfg.method()
	if err != nil {
		return nil, err
	}
	key, err := cfg.verificationKey()
	if err != nil {
		return nil, err
	}

	o := &verifyOptions{}
	for _, opt := range opts {
		opt(o)
	}

	expected := method.Alg()
	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{expected}),
		gojwt.WithTimeFunc(func() time.Time { return now }),
		gojwt.WithLeeway(o.leeway),
	}
	if o.issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(o.issuer))
	}
	if o.audience != "" {
		parserOpts = append(parserOpts, gojwt.WithAudience(o.audience))
	}
	if o.subject != "" {
		parserOpts = append(parserOpts, gojwt.WithSubject(o.subject))
	}
	if o.requireExpiry {
		parserOpts = append(parserOpts, gojwt.WithExpirationRequired())
	}

	mc := gojwt.MapClaims{}
	parsed, err := gojwt.NewParser(parserOpts...).ParseWithClaims(token, mc, func(t *gojwt.Token) (any, error) {
		if t.Method == nil || t.Method.Alg() != expected {
			return nil, ErrUnexpectedSigningMethod
		}
		return key, nil
	})
	if err != nil {
		return nil, classify(token, parsed, expected, err)
	}

	claims, err := claimsFromMap(mc)
	if err != nil {
		return nil, invalidToken(token, ErrInvalidClaims, err)
	}
	if o.requireTokenID && claims.ID == "" {
		return nil, invalidToken(token, ErrInvalidClaims, gojwt.ErrTokenRequiredClaimMissing)
	}

	return claims, nil
}

// Decode reads the claims of token WITHOUT checking its signature. The
// result is only good for routing, e.g. picking the tenant whose key will
// verify the token. Never base an authentication decision on it.
func Decode(token string) (*Claims, error) {
	mc := gojwt.MapClaims{}
	if _, _, err := gojwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, invalidToken(token, ErrMalformedToken, err)
	}

	claims, err := claimsFromMap(mc)
	if err != nil {
		return nil, invalidToken(token, ErrInvalidClaims, err)
	}
	return claims, nil
}

// classify maps golang-jwt errors onto this package's sentinels.
func classify(token string, parsed *gojwt.Token, expected string, err error) error {
	if errors.Is(err, gojwt.ErrTokenMalformed) {
		return invalidToken(token, ErrMalformedToken, err)
	}
	if parsed != nil {
		if alg, _ := parsed.Header["alg"].(string); alg != expected {
			return invalidToken(token, ErrUnexpectedSigningMethod, err)
		}
	}

	switch {
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return invalidToken(token, ErrInvalidSignature, err)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return invalidToken(token, ErrTokenExpired, err)
	case errors.Is(err, gojwt.ErrTokenNotValidYet):
		return invalidToken(token, ErrTokenNotValidYet, err)
	case errors.Is(err, gojwt.ErrTokenInvalidClaims),
		errors.Is(err, gojwt.ErrTokenInvalidIssuer),
		errors.Is(err, gojwt.ErrTokenInvalidAudience),
		errors.Is(err, gojwt.ErrTokenInvalidSubject),
		errors.Is(err, gojwt.ErrTokenRequiredClaimMissing):
		return invalidToken(token, ErrInvalidClaims, err)
	default:
		return invalidToken(token, ErrTokenInvalid, err)
	}
}
