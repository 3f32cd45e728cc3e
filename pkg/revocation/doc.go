// Package revocation implements a TTL bounded denylist of token IDs.
//
// A Ledger writes one record per revoked jti under the key "jtir:<jti>" and
// keeps it only as long as the token could still be presented. Verification
// code calls Check after the signature has been validated:
//
//	ledger := revocation.New(revocation.NewRedisStore(client))
//
//	if err := ledger.RevokeClaims(ctx, claims, time.Now()); err != nil {
//		return err
//	}
//
//	switch err := ledger.Check(ctx, claims.ID); {
//	case errors.Is(err, revocation.ErrTokenRevoked):
//		// reject, the token was invalidated by its issuer
//	case errors.Is(err, revocation.ErrStoreUnavailable):
//		// the ledger could not answer; apply the deployment's failure policy
//	}
//
// The ledger never reports an unreachable store as "not revoked". Every call
// runs under a timeout (500ms by default) and makes a single attempt.
//
// Stores are eventually consistent. A revocation becomes visible to other
// verifiers once the write has propagated through the backing store.
//
// Backends: MemoryStore for tests and single process deployments, RedisStore
// (go-redis), PostgresStore (pgx, schema managed by goose) and MongoStore
// (mongo-driver, expiry via a TTL index). Open selects one from StoreConfig.
package revocation
