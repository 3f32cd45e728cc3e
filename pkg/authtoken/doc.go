// Package authtoken issues and verifies the bearer tokens that authenticate
// users and personal access token holders in a multi-tenant deployment.
//
// Issuance comes in two flavours built on pkg/jwt:
//
//	session, err := authtoken.SignTokenString(cfg, authtoken.User{ID: "u1"}, authtoken.Tenant{ID: "t1"})
//	pat, err := authtoken.SignPATString(cfg, authtoken.User{ID: "u1"}, jwt.WithExpiresIn(90*24*time.Hour))
//
// Session tokens always carry a fresh jti, expire after a day unless the
// caller says otherwise and have iss and sub bound to the tenant and user.
// PATs carry a "pat": true claim that authorization code can test with IsPAT.
//
// A Verifier runs the inbound pipeline: extract the token from the request,
// read its issuer without trusting it, look up that tenant's SigningConfig in
// a Keyring, verify the signature and time claims, then consult the
// revocation ledger. What happens when the ledger cannot be reached is a
// FailurePolicy chosen by the deployment; the default rejects the request.
//
// Middleware wraps the Verifier for net/http and stores the token and its
// claims in the request context.
package authtoken
