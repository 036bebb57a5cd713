// Package middleware holds the http.Handler wrappers of the API.
//
// A middleware is a func(next http.Handler) http.Handler: it does its check
// and either answers the request itself or calls next.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akinalp/quickchat/handlers"
	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
)

// TokenValidator is the part of services.AuthService the middleware needs.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// UserLookup resolves the identity named by a token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type AuthMiddleware struct {
	tokens TokenValidator
	users  UserLookup
}

func NewAuthMiddleware(tokens TokenValidator, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// Require answers 401 unless the request carries "Authorization: Bearer <jwt>"
// for an existing user. The user is stored under handlers.UserContextKey.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}

		claims, err := m.tokens.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// The token may outlive its user.
		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
				return
			}
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
