package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	minSecurityKeyLen = 32
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Security SecurityConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
}

// SecurityConfig holds the token and password settings.
type SecurityConfig struct {
	Prefix       string `env:"SECURITY_PREFIX,        default=Bearer"`
	Key          string `env:"SECURITY_KEY,           required"`
	ExpirationMs int64  `env:"SECURITY_EXPIRATION_MS, default=86400000"`
	BcryptCost   int    `env:"SECURITY_BCRYPT_COST,   default=10"`
}

// TokenTTL is the configured token lifetime.
func (s SecurityConfig) TokenTTL() time.Duration {
	return time.Duration(s.ExpirationMs) * time.Millisecond
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER, default=postgres"`
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxConns        int32         `env:"DATABASE_MAX_CONNS,         default=10"`
	MinConns        int32         `env:"DATABASE_MIN_CONNS,         default=0"`
	MaxConnLifetime time.Duration `env:"DATABASE_MAX_CONN_LIFETIME, default=30m"`
	Migrate         bool          `env:"DATABASE_MIGRATE,           default=true"`
}

// RedisConfig configures the optional restaurant read cache.
type RedisConfig struct {
	Enabled  bool          `env:"CACHE_ENABLED,  default=false"`
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	TTL      time.Duration `env:"CACHE_TTL,      default=5m"`
}

// AdminConfig seeds an ADMIN account at startup when Username is set.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
	Email    string `env:"ADMIN_EMAIL, default=admin@quickbite.local"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l. Tests pass envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if len(c.Security.Key) < minSecurityKeyLen {
		errs = append(errs, fmt.Errorf("SECURITY_KEY must be at least %d bytes", minSecurityKeyLen))
	}
	if c.Security.ExpirationMs <= 0 {
		errs = append(errs, errors.New("SECURITY_EXPIRATION_MS must be positive"))
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	if c.Admin.Username != "" && c.Admin.Password == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is required when ADMIN_USERNAME is set"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }
