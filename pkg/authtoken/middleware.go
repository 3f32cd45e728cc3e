package authtoken

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
	"github.com/dmitrymomot/tokenkit/pkg/revocation"
)

// SkipFunc reports whether a request bypasses authentication.
type SkipFunc func(r *http.Request) bool

// ErrorHandlerFunc writes the response for a rejected request.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareConfig configures MiddlewareWithConfig.
type MiddlewareConfig struct {
	Verifier     *Verifier
	Skip         SkipFunc         // optional request filter
	ErrorHandler ErrorHandlerFunc // defaults to DefaultErrorHandler
}

// Middleware authenticates every request with v.
func Middleware(v *Verifier) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Verifier: v})
}

// MiddlewareWithConfig authenticates requests and stores the raw token and its
// claims in the request context, see jwt.TokenFromContext and
// jwt.ClaimsFromContext.
func MiddlewareWithConfig(cfg MiddlewareConfig) func(next http.Handler) http.Handler {
	if cfg.Verifier == nil {
		panic("authtoken: middleware requires a verifier")
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, claims, err := cfg.Verifier.VerifyRequest(r)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			ctx := jwt.WithToken(r.Context(), token)
			ctx = jwt.WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RejectPATs refuses personal access tokens on the routes it wraps. It must
// run after Middleware.
func RejectPATs(errorHandler ErrorHandlerFunc) func(next http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := jwt.ClaimsFromContext(r.Context())
			if !ok {
				errorHandler(w, r, ErrUnauthenticated)
				return
			}
			if IsPAT(claims) {
				errorHandler(w, r, ErrPATNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StatusCode maps a verification error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrPATNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, revocation.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, jwt.ErrMissingToken),
		errors.Is(err, jwt.ErrTokenInvalid),
		errors.Is(err, revocation.ErrTokenRevoked),
		errors.Is(err, ErrUnknownTenant),
		errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// DefaultErrorHandler replies with the status from StatusCode and its
// standard text. Token details are never echoed back to the client.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	code := StatusCode(err)
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	http.Error(w, http.StatusText(code), code)
}

// LogContextExtractor adds the authenticated token's jti, subject and issuer
// to records logged with a request context. Register it with
// logger.WithContextExtractors.
func LogContextExtractor(ctx context.Context) (slog.Attr, bool) {
	claims, ok := jwt.ClaimsFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.Group("auth",
		slog.String("token_id", claims.ID),
		slog.String("user_id", claims.Subject),
		slog.String("tenant_id", claims.Issuer),
	), true
}
