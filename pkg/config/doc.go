// Package config loads environment based configuration structs.
//
// Values are read from the process environment after the given .env files
// (default ".env") have been merged in with godotenv. Variables already set in
// the environment win over file values. Struct fields are bound with
// caarlos0/env tags:
//
//	type Config struct {
//		SigningAlgorithm string `env:"AUTH_SIGNING_ALGORITHM" envDefault:"HS256"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
