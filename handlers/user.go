package handlers

import (
	"net/http"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
	"github.com/akinalp/quickchat/services"
)

const maxSmallBody = 16 << 10

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// UpdateLanguage godoc
// PATCH /api/users/me/language
// Body: { "language": "fr" }
func (h *UserHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateLanguageRequest
	if !decodeJSON(w, r, maxSmallBody, &req) {
		return
	}

	updated, err := h.userService.UpdateLanguage(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated)
}
