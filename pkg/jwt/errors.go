package jwt

import "errors"

// Configuration errors. These surface while resolving a SigningConfig or
// signing a token and are not recoverable per request.
var (
	ErrUnsupportedAlgorithm = errors.New("jwt: unsupported signing algorithm")
	ErrMissingSigningKey    = errors.New("jwt: missing signing key")
	ErrInvalidSigningKey    = errors.New("jwt: invalid signing key")
)

// Token errors. Every failure of Verify or Decode is a *TokenInvalidError
// that matches ErrTokenInvalid and one of the more specific values below.
var (
	ErrTokenInvalid            = errors.New("jwt: invalid token")
	ErrMalformedToken          = errors.New("jwt: malformed token")
	ErrInvalidSignature        = errors.New("jwt: invalid signature")
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
	ErrTokenExpired            = errors.New("jwt: token is expired")
	ErrTokenNotValidYet        = errors.New("jwt: token is not valid yet")
	ErrInvalidClaims           = errors.New("jwt: invalid claims")
)

// Extraction errors.
var (
	ErrMissingToken = errors.New("jwt: no token in request")
)

// TokenInvalidError carries the rejected token string alongside the reason
// so callers can audit-log both.
type TokenInvalidError struct {
	Token string
	Err   error
}

func (e *TokenInvalidError) Error() string {
	if e.Err == nil {
		return ErrTokenInvalid.Error()
	}
	return e.Err.Error()
}

func (e *TokenInvalidError) Unwrap() error { return e.Err }

// Is makes every TokenInvalidError match ErrTokenInvalid.
func (e *TokenInvalidError) Is(target error) bool { return target == ErrTokenInvalid }

func invalidToken(token string, reason, cause error) error {
	if cause == nil || errors.Is(cause, reason) {
		return &TokenInvalidError{Token: token, Err: reason}
	}
	return &TokenInvalidError{Token: token, Err: errors.Join(reason, cause)}
}
