package cache

import (
	"fmt"
	"time"
)

// Config selects and sizes the cache backend. It is embedded in the app config.
type Config struct {
	Enabled         bool          `yaml:"enabled"`
	Type            string        `yaml:"type" default:"memory" validate:"oneof=memory redis layered"`
	TTL             time.Duration `yaml:"ttl" default:"6h"`
	MaxSize         int           `yaml:"max_size" default:"256" validate:"min=1"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" default:"5m"`
	Redis           RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"6379" validate:"min=1,max=65535"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix" default:"macropulse"`
	PoolSize int    `yaml:"pool_size" default:"10" validate:"min=1"`
}

// New builds the backend named by cfg.Type. Enabled is left to the caller.
func New(cfg Config) (Service, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryCache(cfg.MaxSize, cfg.CleanupInterval), nil
	case "redis":
		return NewRedisCache(cfg.Redis)
	case "layered":
		rc, err := NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewLayeredCache(rc, cfg.MaxSize), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
