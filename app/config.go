package app

import (
	"github.com/tradelane/storefront/app/database"
	"github.com/tradelane/storefront/internal/cache"
	"github.com/tradelane/storefront/internal/nexus"
)

type CacheConfig struct {
	Backend       string `env:"CACHE_BACKEND" env-default:"memory"`
	RedisAddr     string `env:"CACHE_REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int    `env:"CACHE_REDIS_DB" env-default:"0"`
}

// RedisOptions returns cache backend options, or nil for the memory backend.
func (c *CacheConfig) RedisOptions() *cache.RedisOptions {
	if c.Backend != cache.RedisBackend {
		return nil
	}
	return &cache.RedisOptions{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

type Config struct {
	DB    database.Config
	Cache CacheConfig

	AppHost string `env:"APP_HOST" env-default:"localhost"`
	AppPort string `env:"APP_PORT" env-default:"8080"`
	Env     string `env:"APP_ENV" env-default:"development"`

	// AdminTokenKey is the 32-byte symmetric key for back-office tokens.
	AdminTokenKey string `env:"ADMIN_TOKEN_KEY"`
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	err := nexus.NewLoader().Load(c)
	return c, err
}
