package revocation

import "time"

// Driver names a Store backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
)

// DefaultMigrationsTable is the goose version table of the revocation schema.
const DefaultMigrationsTable = "revocation_schema_migrations"

// StoreConfig selects and configures the revocation backend. Only the section
// matching Driver is used.
type StoreConfig struct {
	Driver   Driver `env:"REVOCATION_STORE" envDefault:"memory"`
	Redis    RedisConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
}

// RedisConfig holds connection settings for RedisStore.
// ConnectionURL has the form redis://:password@localhost:6379/0.
type RedisConfig struct {
	ConnectionURL  string        `env:"REVOCATION_REDIS_URL"`
	RetryAttempts  int           `env:"REVOCATION_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REVOCATION_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REVOCATION_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// PostgresConfig holds pool settings for PostgresStore. RetryInterval grows
// linearly with each attempt.
type PostgresConfig struct {
	ConnectionString string        `env:"REVOCATION_PG_CONN_URL"`
	MaxOpenConns     int32         `env:"REVOCATION_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns     int32         `env:"REVOCATION_PG_MAX_IDLE_CONNS" envDefault:"2"`
	MaxConnLifetime  time.Duration `env:"REVOCATION_PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts    int           `env:"REVOCATION_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"REVOCATION_PG_RETRY_INTERVAL" envDefault:"5s"`
	MigrationsTable  string        `env:"REVOCATION_PG_MIGRATIONS_TABLE" envDefault:"revocation_schema_migrations"`
}

// MongoConfig holds client settings for MongoStore.
type MongoConfig struct {
	ConnectionURL  string        `env:"REVOCATION_MONGODB_URL"`
	Database       string        `env:"REVOCATION_MONGODB_DATABASE" envDefault:"auth"`
	Collection     string        `env:"REVOCATION_MONGODB_COLLECTION" envDefault:"jwt_revocations"`
	ConnectTimeout time.Duration `env:"REVOCATION_MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"REVOCATION_MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REVOCATION_MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}
