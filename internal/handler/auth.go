package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sumzhq/sumz-portal/internal/auth"
	"github.com/sumzhq/sumz-portal/internal/middleware"
	"github.com/sumzhq/sumz-portal/internal/service"
)

const (
	loginFailedMessage    = "Login Unsuccessful. Please check username and password."
	usernameTakenMessage  = "Username already exists. Please choose a different one."
	missingFieldsMessage  = "Username and password are required."
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	logger       *slog.Logger
	users        UserService
	sessions     SessionStore
	sessionTTL   time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger *slog.Logger, users UserService, sessions SessionStore, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		users:        users,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// ShowLogin renders the login form.
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if auth.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	renderTemplate(h.logger, w, http.StatusOK, "login.html", pageData{})
}

// Login processes the login form.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderTemplate(h.logger, w, http.StatusBadRequest, "login.html", pageData{Error: loginFailedMessage})
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		// One message for unknown user and wrong password alike.
		renderTemplate(h.logger, w, http.StatusUnauthorized, "login.html", pageData{Error: loginFailedMessage})
		return
	}

	token, err := h.sessions.CreateSession(r.Context(), user.ID, h.sessionTTL)
	if err != nil {
		h.logger.Error("failed to create session", slog.String("error", err.Error()))
		renderTemplate(h.logger, w, http.StatusInternalServerError, "login.html", pageData{Error: "Something went wrong. Please try again."})
		return
	}

	h.setSessionCookie(w, token)

	h.logger.Info("user logged in", slog.String("user_id", user.ID))

	http.Redirect(w, r, safeRedirectTarget(r.URL.Query().Get("next")), http.StatusFound)
}

// ShowSignup renders the signup form.
// GET /signup
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	if auth.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	renderTemplate(h.logger, w, http.StatusOK, "signup.html", pageData{})
}

// Signup processes the signup form.
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderTemplate(h.logger, w, http.StatusBadRequest, "signup.html", pageData{Error: missingFieldsMessage})
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.users.Signup(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			renderTemplate(h.logger, w, http.StatusConflict, "signup.html", pageData{Error: usernameTakenMessage})
		case errors.Is(err, service.ErrMissingCredentials):
			renderTemplate(h.logger, w, http.StatusBadRequest, "signup.html", pageData{Error: missingFieldsMessage})
		default:
			h.logger.Error("signup failed", slog.String("error", err.Error()))
			renderTemplate(h.logger, w, http.StatusInternalServerError, "signup.html", pageData{Error: "Something went wrong. Please try again."})
		}
		return
	}

	h.logger.Info("user signed up", slog.String("user_id", user.ID))

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout destroys the current session.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.DeleteSession(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("failed to delete session", slog.String("error", err.Error()))
		}
	}

	h.clearSessionCookie(w)

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirectTarget only allows same-site relative paths, blocking open
// redirects through the next parameter.
func safeRedirectTarget(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
