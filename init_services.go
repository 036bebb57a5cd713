package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/akinalp/quickchat/config"
	"github.com/akinalp/quickchat/pkg/cache"
	"github.com/akinalp/quickchat/pkg/translator"
	"github.com/akinalp/quickchat/services"
	"github.com/akinalp/quickchat/ws"
)

// Services groups every service instance.
type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Translation services.TranslationService
	Message     services.MessageService
	Inbox       services.InboxService

	// memo is nil unless TRANSLATION_CACHE_TTL is set.
	memo *cache.TranslationMemo
}

// Close releases background resources. Call it after the HTTP server and
// the hub have stopped.
func (s *Services) Close() {
	s.Message.Wait()
	s.memo.Close()
}

// newTranslationBackend picks the backend named by TRANSLATION_PROVIDER.
func newTranslationBackend(cfg config.TranslationConfig, log *slog.Logger) (translator.Backend, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		return translator.NewGoogleBackend(translator.GoogleConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}, log), nil
	case config.ProviderLocal:
		return translator.NewLocalBackend(), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
}

// initServices wires the services. notifier is the hub; the CLI commands
// that never push pass nil and must not send messages.
func initServices(repos *Repositories, notifier ws.Notifier, cfg *config.Config, log *slog.Logger) (*Services, error) {
	backend, err := newTranslationBackend(cfg.Translation, log)
	if err != nil {
		return nil, err
	}
	translation := services.NewTranslationService(backend, log)

	assets, err := services.NewDiskAssetStore(cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		return nil, err
	}

	var memo *cache.TranslationMemo
	if cfg.Translation.CacheTTL > 0 {
		memo = cache.NewTranslationMemo(cfg.Translation.CacheTTL, time.Minute)
		log.Info("translation memo enabled", "ttl", cfg.Translation.CacheTTL)
	}

	return &Services{
		Auth:        services.NewAuthService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry),
		User:        services.NewUserService(repos.User, translation),
		Translation: translation,
		Message: services.NewMessageService(
			repos.Message, repos.User, translation, assets, notifier,
			cfg.Translation.DeliveryTimeout, log,
		),
		Inbox: services.NewInboxService(repos.Message, repos.User, translation, memo, log),
		memo:  memo,
	}, nil
}
