package config

import (
	"time"

	"sharednotes/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша заметок.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"SHARING_REDIS_ENABLED" env-default:"false"`
	Host         string        `yaml:"host" env:"SHARING_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"SHARING_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"SHARING_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"SHARING_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"SHARING_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle      int           `yaml:"min_idle" env:"SHARING_REDIS_MIN_IDLE" env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"SHARING_REDIS_DIAL_TIMEOUT" env-default:"3s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SHARING_REDIS_READ_TIMEOUT" env-default:"1s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SHARING_REDIS_WRITE_TIMEOUT" env-default:"1s"`
	NoteTTL      time.Duration `yaml:"note_ttl" env:"SHARING_REDIS_NOTE_TTL" env-default:"30s"`
}

// ClientConfig переводит настройки в конфигурацию клиента pkg/db/redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:         c.Host,
		Port:         c.Port,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdle:      c.MinIdle,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
