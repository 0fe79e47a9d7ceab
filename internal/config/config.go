// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable of the service. Values come from CHAT_-prefixed
// environment variables; cmd/main loads a .env file first.
type Config struct {
	Port      string `envconfig:"PORT" default:"4000"`
	ClientURL string `envconfig:"CLIENT_URL" default:"http://localhost:5173"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=localhost user=user password=password dbname=relaychat port=5432 sslmode=disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	JWTExpire time.Duration `envconfig:"JWT_EXPIRE" default:"72h"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"uploads"`

	// Liveness timings: a probe is sent every ProbeInterval; a connection
	// that does not acknowledge within AckWindow is evicted.
	ProbeInterval time.Duration `envconfig:"PROBE_INTERVAL" default:"5s"`
	AckWindow     time.Duration `envconfig:"ACK_WINDOW" default:"1s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("chat", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
