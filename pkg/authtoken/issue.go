package authtoken

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
)

// ClaimPAT marks personal access tokens.
const ClaimPAT = "pat"

// DefaultSessionTTL is the lifetime of a session token unless overridden.
const DefaultSessionTTL = 24 * time.Hour

// SignTokenString issues a session token for user within tenant.
//
// Options are applied after the defaults (a random jti and a one day expiry)
// and before the identity claims, so callers can change the lifetime or the
// audience but never the issuer or subject.
func SignTokenString(cfg jwt.SigningConfig, user User, tenant Tenant, opts ...jwt.SignOption) (string, error) {
	if user.ID == "" {
		return "", ErrMissingUserID
	}
	if tenant.ID == "" {
		return "", ErrMissingTenantID
	}

	all := make([]jwt.SignOption, 0, len(opts)+4)
	all = append(all, jwt.WithID(uuid.NewString()), jwt.WithExpiresIn(DefaultSessionTTL))
	all = append(all, opts...)
	all = append(all, jwt.WithIssuer(tenant.ID), jwt.WithSubject(user.ID))

	return jwt.Sign(cfg, nil, all...)
}

// SignPATString issues a personal access token for user. There is no default
// expiry. The jti defaults to a random UUID; pass jwt.WithID to use the ID of
// a stored PAT record instead. The subject is always user.ID.
func SignPATString(cfg jwt.SigningConfig, user User, opts ...jwt.SignOption) (string, error) {
	if user.ID == "" {
		return "", ErrMissingUserID
	}

	all := make([]jwt.SignOption, 0, len(opts)+2)
	all = append(all, jwt.WithID(uuid.NewString()))
	all = append(all, opts...)
	all = append(all, jwt.WithSubject(user.ID))

	return jwt.Sign(cfg, map[string]any{ClaimPAT: true}, all...)
}

// IsPAT reports whether claims belong to a personal access token.
func IsPAT(claims *jwt.Claims) bool {
	return claims.GetBool(ClaimPAT)
}
