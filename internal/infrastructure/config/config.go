package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is the API server configuration.
type Config struct {
	Port      string        `env:"PORT,      default=5000"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	CORSOrigins []string `env:"CORS_ORIGINS"`

	Upload UploadConfig
	Seed   SeedConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR,       default=uploads"`
	MaxBytes int64  `env:"MAX_UPLOAD_BYTES, default=5242880"`
}

// SeedConfig describes the main admin created on an empty admin collection.
// Password has no default; startup fails if it is needed and unset.
type SeedConfig struct {
	Email    string `env:"SEED_ADMIN_EMAIL,    default=admin@elegance.com"`
	Name     string `env:"SEED_ADMIN_NAME,     default=Main Admin"`
	Password string `env:"SEED_ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jewelry-catalog"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Production reports whether the server runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// StorefrontConfig is the shopper CLI configuration.
type StorefrontConfig struct {
	APIURL         string        `env:"STOREFRONT_API_URL,   default=http://localhost:5000"`
	WhatsAppNumber string        `env:"WHATSAPP_NUMBER,      default=919896076856"`
	ShopName       string        `env:"SHOP_NAME,            default=Elegance Jewelry"`
	ShopperID      string        `env:"SHOPPER_ID,           default=default"`
	StateBackend   string        `env:"STATE_BACKEND,        default=file"`
	StateDir       string        `env:"STATE_DIR"`
	PollInterval   time.Duration `env:"STATUS_POLL_INTERVAL, default=30s"`
	LogLevel       string        `env:"LOG_LEVEL,            default=warn"`

	Redis RedisConfig
}

// Load reads the server configuration from the environment, after applying an
// optional .env file from the working directory.
func Load(ctx context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return process[Config](ctx, envconfig.OsLookuper())
}

// LoadStorefront reads the shopper CLI configuration.
func LoadStorefront(ctx context.Context) (*StorefrontConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := process[StorefrontConfig](ctx, envconfig.OsLookuper())
	if err != nil {
		return nil, err
	}
	if cfg.StateBackend != "file" && cfg.StateBackend != "redis" {
		return nil, fmt.Errorf("config: STATE_BACKEND must be \"file\" or \"redis\", got %q", cfg.StateBackend)
	}
	return cfg, nil
}

func process[T any](ctx context.Context, lookuper envconfig.Lookuper) (*T, error) {
	var cfg T
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv applies .env without overriding variables already set.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: read .env: %w", err)
	}
	return nil
}
