package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mazoon-pos/api/internal/i18n"
)

// I18nHandler serves the dashboard translation dictionaries. The routes
// are public: the login screen is translated too.
type I18nHandler struct{}

// NewI18nHandler creates a new I18nHandler.
func NewI18nHandler() *I18nHandler {
	return &I18nHandler{}
}

// RegisterRoutes registers i18n endpoints on the given Chi router.
// Expected to be mounted at /i18n.
func (h *I18nHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Languages)
	r.Get("/{lang}", h.Dictionary)
}

// Languages handles GET /i18n.
func (h *I18nHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"languages": i18n.Languages()})
}

// Dictionary handles GET /i18n/{lang}.
func (h *I18nHandler) Dictionary(w http.ResponseWriter, r *http.Request) {
	dict, ok := i18n.Dict(chi.URLParam(r, "lang"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unsupported language"})
		return
	}
	writeJSON(w, http.StatusOK, dict)
}
