// Package jwt signs, verifies and decodes JSON Web Tokens for a
// multi-tenant deployment, and finds them in HTTP requests.
//
// Twelve algorithms are supported, split into two closed families:
// SymmetricAlgorithm (HS256, HS384, HS512) keyed by a shared secret, and
// AsymmetricAlgorithm (RS*, ES*, PS*) keyed by a PEM encoded keypair.
// ResolveSigningConfig is the only place configured strings are turned into
// a SigningConfig; an unknown algorithm name fails there instead of being
// silently defaulted.
//
// # Architecture
//
//   - algorithm.go – the Algorithm sum type and ParseAlgorithm.
//   - signing_config.go – SigningConfig and its constructors.
//   - codec.go – Sign, Verify and Decode on top of golang-jwt.
//   - claims.go – StandardClaims and Claims (registered + custom claims).
//   - extractor.go – token extraction from headers, Basic auth and query.
//   - context.go – helpers to carry a verified token through a request.
//   - errors.go – sentinel errors and TokenInvalidError.
//
// # Usage
//
//	cfg, err := jwt.ResolveSigningConfig(os.Getenv("SIGNING_ALGORITHM"), os.Getenv("SIGNING_SECRET"))
//	if err != nil {
//	    // fatal: misconfigured deployment
//	}
//
//	token, err := jwt.Sign(cfg, map[string]any{"role": "admin"},
//	    jwt.WithIssuer(tenantID),
//	    jwt.WithSubject(userID),
//	    jwt.WithExpiresIn(time.Hour),
//	)
//
//	claims, err := jwt.Verify(token, cfg, time.Now())
//	if errors.Is(err, jwt.ErrTokenInvalid) {
//	    // reject the request
//	}
//
// Verify pins the algorithm of the SigningConfig and evaluates exp and nbf
// against the time passed in, so it is a pure function of its inputs.
// Decode skips signature verification and exists only to read routing
// hints such as the issuer before the right key is known.
//
// # Error Handling
//
// Verify and Decode return *TokenInvalidError, which matches ErrTokenInvalid
// and a specific cause (ErrTokenExpired, ErrInvalidSignature, ...) under
// errors.Is, and keeps the offending token for audit logs.
package jwt
