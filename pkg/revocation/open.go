package revocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tokenkit/pkg/logger"
)

// Open builds the Store selected by cfg.Driver, connecting and preparing the
// backend schema where needed. The returned close function releases the
// connection and must be called on shutdown.
func Open(ctx context.Context, cfg StoreConfig, log *slog.Logger) (Store, func() error, error) {
	log = logger.Or(log)

	switch cfg.Driver {
	case DriverMemory, "":
		ms := NewMemoryStore()
		return ms, ms.Close, nil

	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client), client.Close, nil

	case DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := MigratePostgres(ctx, pool, cfg.Postgres.MigrationsTable, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		closeFn := func() error {
			pool.Close()
			return nil
		}
		return NewPostgresStore(pool, time.Now), closeFn, nil

	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		store := NewMongoStore(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), time.Now)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return store, func() error { return client.Disconnect(context.Background()) }, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
