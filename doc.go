// Package tokenkit is the JWT authentication layer of a multi-tenant service.
//
// The work is split across packages under pkg/:
//
//   - jwt resolves signing configs, signs and verifies tokens and pulls them
//     out of HTTP requests
//   - revocation keeps a TTL bounded denylist of token IDs in memory, Redis,
//     PostgreSQL or MongoDB
//   - authtoken issues session tokens and personal access tokens, routes
//     verification to the tenant's key and provides HTTP middleware
//   - cache, config and logger are the supporting pieces
//
// Typical wiring:
//
//	cfg, err := authtoken.LoadConfig()
//	if err != nil {
//		return err
//	}
//	svc, err := authtoken.Open(ctx, cfg, log, prometheus.DefaultRegisterer)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	r := chi.NewRouter()
//	r.Use(authtoken.Middleware(svc.Verifier))
//	r.With(authtoken.RejectPATs(nil)).Post("/settings", updateSettings)
//
//	token, err := svc.IssueSession(ctx, authtoken.User{ID: userID}, authtoken.Tenant{ID: tenantID})
//
// Logout revokes the presented token until it would have expired anyway:
//
//	err := svc.RevokeToken(ctx, token)
package tokenkit
