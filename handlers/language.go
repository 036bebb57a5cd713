package handlers

import (
	"net/http"

	"github.com/akinalp/quickchat/pkg"
	"github.com/akinalp/quickchat/services"
)

type LanguageHandler struct {
	translation services.TranslationService
}

func NewLanguageHandler(translation services.TranslationService) *LanguageHandler {
	return &LanguageHandler{translation: translation}
}

// List godoc
// GET /api/languages
// Never fails: a backend outage serves the built-in catalogue.
func (h *LanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.translation.SupportedLanguages(r.Context()))
}
