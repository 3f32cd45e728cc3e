package jwt

import "time"

// SignOption sets registered claims on a token being signed. Options apply
// in order, so a later option overrides an earlier one for the same claim.
type SignOption func(*signOptions)

type signOptions struct {
	claims       StandardClaims
	issuedAt     time.Time
	noIssuedAt   bool
	expiresIn    time.Duration
	hasExpiresIn bool
}

// WithIssuer sets iss, the tenant that routes verification to its key.
func WithIssuer(iss string) SignOption {
	return func(o *signOptions) { o.claims.Issuer = iss }
}

// WithSubject sets sub, usually the user ID.
func WithSubject(sub string) SignOption {
	return func(o *signOptions) { o.claims.Subject = sub }
}

// WithAudience sets aud as a single string.
func WithAudience(aud string) SignOption {
	return func(o *signOptions) { o.claims.Audience = aud }
}

// WithID sets jti, the revocation ledger key.
func WithID(jti string) SignOption {
	return func(o *signOptions) { o.claims.ID = jti }
}

// WithNotBefore sets nbf. A zero time leaves nbf out.
func WithNotBefore(t time.Time) SignOption {
	return func(o *signOptions) {
		o.claims.NotBefore = 0
		if !t.IsZero() {
			o.claims.NotBefore = t.Unix()
		}
	}
}

// WithExpiresAt sets an absolute expiry and discards any WithExpiresIn. A
// zero time behaves like WithoutExpiry.
func WithExpiresAt(t time.Time) SignOption {
	return func(o *signOptions) {
		o.claims.ExpiresAt = 0
		if !t.IsZero() {
			o.claims.ExpiresAt = t.Unix()
		}
		o.expiresIn, o.hasExpiresIn = 0, false
	}
}

// WithExpiresIn sets exp relative to the issued-at time.
func WithExpiresIn(d time.Duration) SignOption {
	return func(o *signOptions) {
		o.claims.ExpiresAt = 0
		o.expiresIn, o.hasExpiresIn = d, true
	}
}

// WithoutExpiry drops any expiry set by an earlier option.
func WithoutExpiry() SignOption {
	return func(o *signOptions) {
		o.claims.ExpiresAt = 0
		o.expiresIn, o.hasExpiresIn = 0, false
	}
}

// WithIssuedAt pins iat instead of reading the wall clock.
func WithIssuedAt(t time.Time) SignOption {
	return func(o *signOptions) {
		o.issuedAt = t
		o.noIssuedAt = false
	}
}

// WithoutIssuedAt omits iat from the payload.
func WithoutIssuedAt() SignOption {
	return func(o *signOptions) { o.noIssuedAt = true }
}

func (o *signOptions) resolve() StandardClaims {
	base := o.issuedAt
	if base.IsZero() {
		base = time.Now()
	}

	claims := o.claims
	if !o.noIssuedAt {
		claims.IssuedAt = base.Unix()
	}
	if o.hasExpiresIn {
		claims.ExpiresAt = base.Add(o.expiresIn).Unix()
	}
	return claims
}

// VerifyOption adds a claim expectation to Verify. The signing algorithm is
// never configurable here; it always comes from the SigningConfig.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	issuer         string
	audience       string
	subject        string
	leeway         time.Duration
	requireExpiry  bool
	requireTokenID bool
}

// WithExpectedIssuer rejects tokens whose iss differs from iss.
func WithExpectedIssuer(iss string) VerifyOption {
	return func(o *verifyOptions) { o.issuer = iss }
}

// WithExpectedAudience rejects tokens whose aud does not include aud.
func WithExpectedAudience(aud string) VerifyOption {
	return func(o *verifyOptions) { o.audience = aud }
}

// WithExpectedSubject rejects tokens whose sub differs from sub.
func WithExpectedSubject(sub string) VerifyOption {
	return func(o *verifyOptions) { o.subject = sub }
}

// WithClockTolerance accepts tokens up to d past exp or d before nbf.
func WithClockTolerance(d time.Duration) VerifyOption {
	return func(o *verifyOptions) { o.leeway = max(d, 0) }
}

// WithRequiredExpiry rejects tokens that carry no exp claim.
func WithRequiredExpiry() VerifyOption {
	return func(o *verifyOptions) { o.requireExpiry = true }
}

// WithRequiredTokenID rejects tokens that carry no jti claim. Such tokens
// cannot be revoked.
func WithRequiredTokenID() VerifyOption {
	return func(o *verifyOptions) { o.requireTokenID = true }
}
