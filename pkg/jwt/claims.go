package jwt

import (
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Registered claim names (RFC 7519 section 4.1). Payloads passed to Sign may
// not use them; they are set through SignOption values instead.
const (
	ClaimID        = "jti"
	ClaimAudience  = "aud"
	ClaimSubject   = "sub"
	ClaimIssuer    = "iss"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimIssuedAt  = "iat"
)

var registeredClaims = []string{
	ClaimID, ClaimAudience, ClaimSubject, ClaimIssuer,
	ClaimExpiresAt, ClaimNotBefore, ClaimIssuedAt,
}

func isRegisteredClaim(name string) bool {
	return slices.Contains(registeredClaims, name)
}

// StandardClaims represents the registered JWT claims defined in RFC 7519 Section 4.1.
// All fields use Unix timestamps for temporal claims to ensure consistent validation.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"` // JWT ID - revocation ledger key
	Subject   string `json:"sub,omitempty"` // Subject - typically user ID
	Issuer    string `json:"iss,omitempty"` // Issuer - typically tenant ID
	Audience  string `json:"aud,omitempty"` // Audience - intended recipient of the token
	ExpiresAt int64  `json:"exp,omitempty"` // Expiration time - Unix timestamp when token expires
	NotBefore int64  `json:"nbf,omitempty"` // Not before - Unix timestamp when token becomes valid
	IssuedAt  int64  `json:"iat,omitempty"` // Issued at - Unix timestamp when token was created
}

// Claims is a decoded token payload: the registered claims plus every other
// field the issuer put in the payload.
type Claims struct {
	StandardClaims
	Custom map[string]any
}

// Get returns a custom claim.
func (c *Claims) Get(name string) (any, bool) {
	if c == nil || c.Custom == nil {
		return nil, false
	}
	v, ok := c.Custom[name]
	return v, ok
}

// GetBool returns a custom claim as bool. Missing and non-bool values are false.
func (c *Claims) GetBool(name string) bool {
	v, _ := c.Get(name)
	b, _ := v.(bool)
	return b
}

// GetString returns a custom claim as string.
func (c *Claims) GetString(name string) string {
	v, _ := c.Get(name)
	s, _ := v.(string)
	return s
}

// ExpiresAtTime returns exp as time.Time and false when the token never expires.
func (c *Claims) ExpiresAtTime() (time.Time, bool) {
	if c == nil || c.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(c.ExpiresAt, 0), true
}

// RemainingValidity is the time left until exp, never negative.
// Tokens without exp report false.
func (c *Claims) RemainingValidity(now time.Time) (time.Duration, bool) {
	exp, ok := c.ExpiresAtTime()
	if !ok {
		return 0, false
	}
	return max(exp.Sub(now), 0), true
}

// MarshalJSON flattens registered and custom claims into one object.
func (c Claims) MarshalJSON() ([]byte, error) {
	out := c.toMap()
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat payload into registered and custom claims.
func (c *Claims) UnmarshalJSON(data []byte) error {
	var m gojwt.MapClaims
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := claimsFromMap(m)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

func (c Claims) toMap() gojwt.MapClaims {
	out := make(gojwt.MapClaims, len(c.Custom)+len(registeredClaims))
	maps.Copy(out, c.Custom)
	setString(out, ClaimID, c.ID)
	setString(out, ClaimSubject, c.Subject)
	setString(out, ClaimIssuer, c.Issuer)
	setString(out, ClaimAudience, c.Audience)
	setInt(out, ClaimExpiresAt, c.ExpiresAt)
	setInt(out, ClaimNotBefore, c.NotBefore)
	setInt(out, ClaimIssuedAt, c.IssuedAt)
	return out
}

func setString(m gojwt.MapClaims, k, v string) {
	if v != "" {
		m[k] = v
	}
}

func setInt(m gojwt.MapClaims, k string, v int64) {
	if v != 0 {
		m[k] = v
	}
}

// claimsFromMap validates registered claim types while converting.
func claimsFromMap(m gojwt.MapClaims) (*Claims, error) {
	var (
		c   Claims
		err error
	)

	if c.Subject, err = m.GetSubject(); err != nil {
		return nil, errors.Join(ErrInvalidClaims, err)
	}
	if c.Issuer, err = m.GetIssuer(); err != nil {
		return nil, errors.Join(ErrInvalidClaims, err)
	}
	aud, err := m.GetAudience()
	if err != nil {
		return nil, errors.Join(ErrInvalidClaims, err)
	}
	if len(aud) > 0 {
		c.Audience = aud[0]
	}
	if v, ok := m[ClaimID]; ok {
		id, isString := v.(string)
		if !isString {
			return nil, errors.Join(ErrInvalidClaims, gojwt.ErrInvalidType)
		}
		c.ID = id
	}

	if c.ExpiresAt, err = unixClaim(m.GetExpirationTime); err != nil {
		return nil, err
	}
	if c.NotBefore, err = unixClaim(m.GetNotBefore); err != nil {
		return nil, err
	}
	if c.IssuedAt, err = unixClaim(m.GetIssuedAt); err != nil {
		return nil, err
	}

	for k, v := range m {
		if isRegisteredClaim(k) {
			continue
		}
		if c.Custom == nil {
			c.Custom = make(map[string]any)
		}
		c.Custom[k] = v
	}

	return &c, nil
}

func unixClaim(get func() (*gojwt.NumericDate, error)) (int64, error) {
	d, err := get()
	if err != nil {
		return 0, errors.Join(ErrInvalidClaims, err)
	}
	if d == nil {
		return 0, nil
	}
	return d.Unix(), nil
}
