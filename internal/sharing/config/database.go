package config

import (
	"fmt"
	"time"
)

// Поддерживаемые хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StorageConfig выбирает хранилище.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"SHARING_STORAGE_DRIVER" env-default:"sqlite"`
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string        `yaml:"host" env:"SHARING_POSTGRES_HOST" env-default:"localhost"`
	Port          int           `yaml:"port" env:"SHARING_POSTGRES_PORT" env-default:"5432"`
	User          string        `yaml:"user" env:"SHARING_POSTGRES_USER" env-default:"postgres"`
	Password      string        `yaml:"password" env:"SHARING_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string        `yaml:"database" env:"SHARING_POSTGRES_DB" env-default:"sharing"`
	MinConn       int           `yaml:"min_conn" env:"SHARING_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int           `yaml:"max_conn" env:"SHARING_POSTGRES_MAX_CONN" env-default:"10"`
	PingAttempts  uint          `yaml:"ping_attempts" env:"SHARING_POSTGRES_PING_ATTEMPTS" env-default:"5"`
	PingDelay     time.Duration `yaml:"ping_delay" env:"SHARING_POSTGRES_PING_DELAY" env-default:"1s"`
	MigrationsDir string        `yaml:"migrations_dir" env:"SHARING_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/sharing"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// SQLiteConfig содержит путь к файлу базы.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SHARING_SQLITE_PATH" env-default:"shared_notes.db"`
}
