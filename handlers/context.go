// Package handlers holds the HTTP handlers of the chat API.
//
// Handlers stay thin: parse the request, call a service, write the envelope
// from pkg/response.go. Authentication happens in middleware, which puts the
// caller's *models.User into the request context under UserContextKey.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
)

type contextKey string

// UserContextKey is the context key of the authenticated *models.User.
const UserContextKey contextKey = "user"

// currentUser writes a 401 and returns false when the request carries no user.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok || user == nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return nil, false
	}
	return user, true
}

// decodeJSON reads at most limit bytes of JSON body into dst. An oversized
// body is answered with 413, any other bad body with 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			pkg.Error(w, fmt.Errorf("%w: request body exceeds %d bytes", pkg.ErrPayloadTooLarge, limit))
			return false
		}
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
