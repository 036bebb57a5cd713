package main

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/akinalp/quickchat/handlers"
	"github.com/akinalp/quickchat/services"
)

// initRoutes registers every route and wraps the mux with CORS.
//
// /ws authenticates with ?token= because browsers cannot set headers on the
// WebSocket handshake.
func initRoutes(h *Handlers, uploadDir string, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	auth := h.Auth.Require

	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.Handle("GET "+services.PublicUploadPrefix, handlers.Uploads(uploadDir))
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)

	mux.Handle("GET /api/users/me", auth(http.HandlerFunc(h.User.Me)))
	mux.Handle("PATCH /api/users/me/language", auth(http.HandlerFunc(h.User.UpdateLanguage)))
	mux.Handle("GET /api/languages", auth(http.HandlerFunc(h.Language.List)))

	mux.Handle("GET /api/messages/users", auth(http.HandlerFunc(h.Message.Sidebar)))
	mux.Handle("GET /api/messages/{id}", auth(http.HandlerFunc(h.Message.Conversation)))
	mux.Handle("PUT /api/messages/mark/{id}", auth(http.HandlerFunc(h.Message.MarkSeen)))
	mux.Handle("POST /api/messages/send/{id}", auth(http.HandlerFunc(h.Message.Send)))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return corsHandler.Handler(mux)
}
