package main

import (
	"log/slog"

	"github.com/akinalp/quickchat/config"
	"github.com/akinalp/quickchat/handlers"
	"github.com/akinalp/quickchat/middleware"
	"github.com/akinalp/quickchat/ws"
)

// Handlers groups the HTTP and WebSocket handlers.
type Handlers struct {
	Message  *handlers.MessageHandler
	User     *handlers.UserHandler
	Language *handlers.LanguageHandler
	WS       *ws.Handler
	Auth     *middleware.AuthMiddleware
}

func initHandlers(svcs *Services, repos *Repositories, hub *ws.Hub, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{
		Message:  handlers.NewMessageHandler(svcs.Message, svcs.Inbox, cfg.Upload.MaxSize),
		User:     handlers.NewUserHandler(svcs.User),
		Language: handlers.NewLanguageHandler(svcs.Translation),
		WS:       ws.NewHandler(hub, svcs.Auth, repos.User, cfg.Server.AllowedOrigins, log),
		Auth:     middleware.NewAuthMiddleware(svcs.Auth, repos.User),
	}
}
