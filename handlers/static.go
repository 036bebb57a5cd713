package handlers

import (
	"net/http"
	"strings"

	"github.com/akinalp/quickchat/pkg"
	"github.com/akinalp/quickchat/services"
)

// Health godoc
// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "quickchat"})
}

// Uploads serves stored images from dir under services.PublicUploadPrefix.
// Only flat file names are served; subdirectories are a 404.
func Uploads(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))

	return http.StripPrefix(services.PublicUploadPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if name == "" || strings.ContainsAny(name, `/\`) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	}))
}
