package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port            string        `env:"SERVER_PORT, default=8080"`
	Env             string        `env:"APP_ENV, default=development"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	LogPretty       bool          `env:"LOG_PRETTY, default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=5s"`

	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH, default=1"`
	BcryptCost        int `env:"BCRYPT_COST, default=10"`

	DB DBConfig
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host             string        `env:"DB_HOST, required"`
	Port             int           `env:"DB_PORT, default=5432"`
	User             string        `env:"DB_USER, required"`
	Password         string        `env:"DB_PASSWORD"`
	Name             string        `env:"DB_NAME, required"`
	SSLMode          string        `env:"DB_SSLMODE, default=disable"`
	MaxConns         int32         `env:"DB_MAX_CONNS, default=10"`
	MinConns         int32         `env:"DB_MIN_CONNS, default=2"`
	ConnectTimeout   time.Duration `env:"DB_CONNECT_TIMEOUT, default=5s"`
	StatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT, default=30s"`
	ConnectRetries   int           `env:"DB_CONNECT_RETRIES, default=5"`
	AutoMigrate      bool          `env:"DB_AUTO_MIGRATE, default=true"`
}

// URL renders the postgres:// connection URL shared by pgxpool and migrate.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   c.Name,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file, then the environment.
func Load(ctx context.Context) (*Config, bool, error) {
	dotenv := godotenv.Load() == nil
	cfg, err := load(ctx, envconfig.OsLookuper())
	return cfg, dotenv, err
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.DB.MinConns > cfg.DB.MaxConns {
		return nil, fmt.Errorf("config: DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", cfg.DB.MinConns, cfg.DB.MaxConns)
	}
	if cfg.DB.ConnectRetries < 1 {
		cfg.DB.ConnectRetries = 1
	}
	return &cfg, nil
}
