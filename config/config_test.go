package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should apply defaults when only the secret is set", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := Load()
		req.NoError(err)
		req.Equal("0.0.0.0:5001", cfg.Server.Addr())
		req.Equal([]string{"*"}, cfg.Server.AllowedOrigins)
		req.Equal(ProviderLocal, cfg.Translation.Provider)
		req.Equal(15*time.Second, cfg.Translation.DeliveryTimeout)
		req.Zero(cfg.Translation.CacheTTL)
		req.Equal("info", cfg.Log.Level)
	})

	t.Run("should read prefixed section variables", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("SERVER_PORT", "8088")
		t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")
		t.Setenv("TRANSLATION_PROVIDER", "Google")
		t.Setenv("TRANSLATION_API_KEY", "key")
		t.Setenv("TRANSLATION_CACHE_TTL", "10m")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load()
		req.NoError(err)
		req.Equal(8088, cfg.Server.Port)
		req.Equal([]string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
		req.Equal(ProviderGoogle, cfg.Translation.Provider)
		req.Equal(10*time.Minute, cfg.Translation.CacheTTL)
		req.Equal("json", cfg.Log.Format)
	})

	t.Run("should fail without a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("should fail when google has no api key", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("TRANSLATION_PROVIDER", "google")
		t.Setenv("TRANSLATION_API_KEY", "")
		_, err := Load()
		require.ErrorContains(t, err, "TRANSLATION_API_KEY")
	})

	t.Run("should reject unknown providers", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("TRANSLATION_PROVIDER", "deepl")
		_, err := Load()
		require.ErrorContains(t, err, "unknown TRANSLATION_PROVIDER")
	})
}

func TestLoad_IgnoresUnprefixedNames(t *testing.T) {
	req := require.New(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_PATH", "unset below")
	req.NoError(os.Unsetenv("DATABASE_PATH"))
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("HOST", "example.com")

	cfg, err := Load()
	req.NoError(err)
	req.Equal("0.0.0.0", cfg.Server.Host)
	req.Equal("./data/quickchat.db", cfg.Database.Path)
}
