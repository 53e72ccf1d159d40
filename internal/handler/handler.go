// Package handler provides HTTP request handlers.
package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sumzhq/sumz-portal/internal/auth"
	"github.com/sumzhq/sumz-portal/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// pageData is the payload every page template receives.
type pageData struct {
	CurrentUser *model.User
	Error       string
}

// Handler serves the informational pages.
type Handler struct {
	logger *slog.Logger
}

// New creates a new Handler instance.
func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Index serves the landing page.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "index.html")
}

// APIDocs serves the API documentation page.
// GET /api-docs
func (h *Handler) APIDocs(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "api_docs.html")
}

// Terms serves the terms of service page.
// GET /terms
func (h *Handler) Terms(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "terms_of_service.html")
}

// Privacy serves the privacy policy page.
// GET /privacy
func (h *Handler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "privacy_policy.html")
}

// SumzAI serves the gated product page.
// GET /sumz-ai-2.5 (session required)
func (h *Handler) SumzAI(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "sumz_ai_2_5.html")
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "resource not found"})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string) {
	renderTemplate(h.logger, w, http.StatusOK, name, pageData{
		CurrentUser: auth.UserFromContext(r.Context()),
	})
}

// renderTemplate writes an HTML page. Template errors surface as 500s.
func renderTemplate(logger *slog.Logger, w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("template render failed",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
