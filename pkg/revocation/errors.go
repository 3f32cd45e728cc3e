package revocation

import "errors"

var (
	ErrTokenRevoked     = errors.New("revocation: token was revoked")
	ErrStoreUnavailable = errors.New("revocation: store unavailable")
	ErrMissingTokenID   = errors.New("revocation: token has no id")
	ErrInvalidTTL       = errors.New("revocation: ttl must be positive")
)

// Backend setup errors.
var (
	ErrUnknownDriver            = errors.New("revocation: unknown store driver")
	ErrEmptyConnectionURL       = errors.New("revocation: empty connection url")
	ErrFailedToParseRedisURL    = errors.New("revocation: failed to parse redis connection url")
	ErrRedisNotReady            = errors.New("revocation: redis did not become ready within the given time period")
	ErrFailedToParsePostgresURL = errors.New("revocation: failed to parse postgres connection url")
	ErrPostgresNotReady         = errors.New("revocation: failed to open postgres connection")
	ErrFailedToApplyMigrations  = errors.New("revocation: failed to apply migrations")
	ErrMongoNotReady            = errors.New("revocation: failed to connect to mongo")
	ErrHealthcheckFailed        = errors.New("revocation: store healthcheck failed")
)

// unavailable marks err as a store failure unless it already is one.
func unavailable(err error) error {
	if err == nil || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return errors.Join(ErrStoreUnavailable, err)
}
