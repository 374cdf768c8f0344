package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration, populated from the environment.
// Defaults match the local docker-compose setup.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	PostgresDSN string `envconfig:"POSTGRES_DSN" default:"host=localhost user=user password=password dbname=chatrelaydb port=5432 sslmode=disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
