// Package logger builds the *slog.Logger instances used across tokenkit.
//
// New applies functional options on top of a JSON, INFO level default and
// wraps the chosen handler so attributes carried by a context.Context are
// added to every record logged with a *Context method:
//
//	log := logger.New(
//		logger.WithService("auth-api"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "token revoked", logger.TokenID(jti), logger.TenantID(iss))
//
// Attribute helpers keep key names consistent between packages. Helpers that
// receive an empty value return an empty slog.Attr, which slog drops.
//
// Components accept a logger through an option and fall back to Discard, so
// nothing is written unless the caller opts in.
package logger
