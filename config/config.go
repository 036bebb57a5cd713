// Package config loads the server configuration from the environment.
//
// A .env file in the working directory is read first when present, then the
// process environment is decoded into Config. Every section maps to an env
// prefix: Server -> SERVER_*, Translation -> TRANSLATION_*, and so on.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ProviderGoogle = "google"
	ProviderLocal  = "local"
)

// Config carries every configuration value of the server.
//
// Field names become env names: Translation.DeliveryTimeout is read from
// TRANSLATION_DELIVERY_TIMEOUT. Inner fields must not get an envconfig alias:
// envconfig also looks an alias up unprefixed (PATH, HOST).
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Upload      UploadConfig
	Translation TranslationConfig
	Log         LogConfig
}

type ServerConfig struct {
	Host           string   `split_words:"true" default:"0.0.0.0"`
	Port           int      `split_words:"true" default:"5001"`
	AllowedOrigins []string `split_words:"true" default:"*"`
}

type DatabaseConfig struct {
	Path string `split_words:"true" default:"./data/quickchat.db"`
}

type JWTConfig struct {
	Secret            string        `split_words:"true" required:"true"`
	AccessTokenExpiry time.Duration `split_words:"true" default:"168h"`
}

type UploadConfig struct {
	Dir     string `split_words:"true" default:"./data/uploads"`
	MaxSize int64  `split_words:"true" default:"5242880"` // 5MB
}

// TranslationConfig selects and tunes the translation backend.
//
// DeliveryTimeout bounds the background translate-and-push step of a send.
// CacheTTL enables memoization of translated inbox text when positive.
type TranslationConfig struct {
	Provider        string        `split_words:"true" default:"local"`
	APIKey          string        `split_words:"true"`
	BaseURL         string        `split_words:"true" default:"https://translation.googleapis.com/language/translate/v2"`
	Timeout         time.Duration `split_words:"true" default:"5s"`
	MaxRetries      int           `split_words:"true" default:"2"`
	DeliveryTimeout time.Duration `split_words:"true" default:"15s"`
	CacheTTL        time.Duration `split_words:"true" default:"0s"`
}

type LogConfig struct {
	Level  string `split_words:"true" default:"info"`
	Format string `split_words:"true" default:"text"`
	Output string `split_words:"true" default:"stdout"`
}

// Load reads the optional .env file and decodes the environment.
func Load() (*Config, error) {
	// Missing .env is fine: production sets real env variables.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}

	c.Translation.Provider = strings.ToLower(strings.TrimSpace(c.Translation.Provider))
	switch c.Translation.Provider {
	case ProviderLocal:
	case ProviderGoogle:
		if c.Translation.APIKey == "" {
			return errors.New("TRANSLATION_API_KEY is required for the google provider")
		}
	default:
		return fmt.Errorf("unknown TRANSLATION_PROVIDER %q (want google or local)", c.Translation.Provider)
	}

	if c.Translation.DeliveryTimeout <= 0 {
		return fmt.Errorf("TRANSLATION_DELIVERY_TIMEOUT must be positive, got %s", c.Translation.DeliveryTimeout)
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE must be positive, got %d", c.Upload.MaxSize)
	}
	return nil
}

// Addr returns the listen address, e.g. "0.0.0.0:5001".
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
