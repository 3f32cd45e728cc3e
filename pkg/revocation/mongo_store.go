package revocation

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoRecord struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MongoStore keeps one document per revoked token. The server removes expired
// documents through the TTL index created by EnsureIndexes; until its monitor
// runs, reads filter on expires_at.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore uses coll for revocation documents.
func NewMongoStore(coll *mongo.Collection, now func() time.Time) *MongoStore {
	if now == nil {
		now = time.Now
	}
	return &MongoStore{coll: coll, now: now}
}

// EnsureIndexes creates the TTL index on expires_at. It is idempotent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// SetWithTTL upserts the record with an absolute expires_at.
func (s *MongoStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value, "expires_at": s.now().Add(ttl)}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Get returns the value of key unless it has expired.
func (s *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{
		"_id":        key,
		"expires_at": bson.M{"$gt": s.now()},
	}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable(err)
	}
	return rec.Value, true, nil
}

// Healthcheck pings the deployment behind the collection.
func (s *MongoStore) Healthcheck(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// ConnectMongo connects and pings, retrying up to cfg.RetryAttempts times.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout),
		)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrMongoNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrMongoNotReady, lastErr)
}
