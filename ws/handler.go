package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
)

// TokenValidator checks the access token passed on the handshake.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// UserLookup resolves the identity named by a token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Handler upgrades GET /ws?token=<jwt> to a WebSocket and registers the
// connection with the Hub.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
	users          UserLookup
	upgrader       websocket.Upgrader
	log            *slog.Logger
}

// NewHandler builds the handshake handler. allowedOrigins may contain "*" to
// accept any Origin.
func NewHandler(hub *Hub, tokenValidator TokenValidator, users UserLookup, allowedOrigins []string, log *slog.Logger) *Handler {
	allowAll := lo.Contains(allowedOrigins, "*")

	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
		users:          users,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || lo.Contains(allowedOrigins, origin)
			},
		},
		log: log.With("component", "ws"),
	}
}

func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// A valid token may outlive its user; only existing users get presence.
	if _, err := h.users.GetByID(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		h.log.Error("user lookup failed", "user_id", claims.UserID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.Warn("upgrade failed", "user_id", claims.UserID, "error", err)
		return
	}

	client := newClient(h.hub, conn, claims.UserID, h.log)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump()
}
