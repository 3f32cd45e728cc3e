package authtoken

import "errors"

var (
	ErrMissingUserID   = errors.New("authtoken: user id is required")
	ErrMissingTenantID = errors.New("authtoken: tenant id is required")
	ErrUnknownTenant   = errors.New("authtoken: unknown tenant")
	ErrPATNotAllowed   = errors.New("authtoken: personal access tokens are not allowed here")
	ErrUnauthenticated = errors.New("authtoken: request is not authenticated")
	ErrInvalidKeyring  = errors.New("authtoken: invalid keyring")
)
