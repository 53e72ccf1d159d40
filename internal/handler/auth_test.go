package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sumzhq/sumz-portal/internal/middleware"
	"github.com/sumzhq/sumz-portal/internal/model"
	"github.com/sumzhq/sumz-portal/internal/service"
)

// fakeUserService is a UserService with canned results.
type fakeUserService struct {
	signupUser *model.User
	signupErr  error
	authUser   *model.User
	authErr    error
}

func (f *fakeUserService) Signup(ctx context.Context, username, password string) (*model.User, error) {
	return f.signupUser, f.signupErr
}

func (f *fakeUserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	return f.authUser, f.authErr
}

// fakeSessionStore records session activity.
type fakeSessionStore struct {
	token        string
	createErr    error
	deletedToken string
}

func (f *fakeSessionStore) CreateSession(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	return f.token, f.createErr
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, token string) error {
	f.deletedToken = token
	return nil
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	users := &fakeUserService{authUser: &model.User{ID: "user-1", Username: "alice"}}
	sessions := &fakeSessionStore{token: "tok-123"}
	h := NewAuthHandler(testLogger(), users, sessions, time.Hour, false)

	rec := httptest.NewRecorder()
	h.Login(rec, formRequest("/login", url.Values{"username": {"alice"}, "password": {"hunter2"}}))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect 302, got %d", rec.Code)
	}

	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %s", loc)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}

	if cookie.Value != "tok-123" {
		t.Errorf("expected cookie value 'tok-123', got %q", cookie.Value)
	}

	if !cookie.HttpOnly {
		t.Error("expected session cookie to be HttpOnly")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	users := &fakeUserService{authErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(testLogger(), users, &fakeSessionStore{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.Login(rec, formRequest("/login", url.Values{"username": {"alice"}, "password": {"wrong"}}))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	if sessionCookie(rec) != nil {
		t.Error("expected no session cookie on failed login")
	}

	if !strings.Contains(rec.Body.String(), "Login Unsuccessful. Please check username and password.") {
		t.Error("expected generic login failure message in page")
	}
}

func TestAuthHandler_Login_NextRedirect(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{"relative path", "/api-keys", "/api-keys"},
		{"absolute url rejected", "https://evil.example", "/"},
		{"protocol-relative rejected", "//evil.example", "/"},
		{"empty", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUserService{authUser: &model.User{ID: "user-1"}}
			h := NewAuthHandler(testLogger(), users, &fakeSessionStore{token: "tok"}, time.Hour, false)

			target := "/login"
			if tt.next != "" {
				target += "?next=" + url.QueryEscape(tt.next)
			}

			rec := httptest.NewRecorder()
			h.Login(rec, formRequest(target, url.Values{"username": {"alice"}, "password": {"pw"}}))

			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("expected redirect to %q, got %q", tt.want, loc)
			}
		})
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	users := &fakeUserService{signupUser: &model.User{ID: "user-1", Username: "alice"}}
	h := NewAuthHandler(testLogger(), users, &fakeSessionStore{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.Signup(rec, formRequest("/signup", url.Values{"username": {"alice"}, "password": {"hunter2"}}))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect 302, got %d", rec.Code)
	}

	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %s", loc)
	}
}

func TestAuthHandler_Signup_UsernameTaken(t *testing.T) {
	users := &fakeUserService{signupErr: service.ErrUsernameTaken}
	h := NewAuthHandler(testLogger(), users, &fakeSessionStore{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.Signup(rec, formRequest("/signup", url.Values{"username": {"alice"}, "password": {"hunter2"}}))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "Username already exists. Please choose a different one.") {
		t.Error("expected duplicate-username message in page")
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	users := &fakeUserService{signupErr: service.ErrMissingCredentials}
	h := NewAuthHandler(testLogger(), users, &fakeSessionStore{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.Signup(rec, formRequest("/signup", url.Values{"username": {""}, "password": {""}}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_InternalError(t *testing.T) {
	users := &fakeUserService{signupErr: errors.New("db down")}
	h := NewAuthHandler(testLogger(), users, &fakeSessionStore{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.Signup(rec, formRequest("/signup", url.Values{"username": {"alice"}, "password": {"pw"}}))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := &fakeSessionStore{}
	h := NewAuthHandler(testLogger(), &fakeUserService{}, sessions, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-123"})
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect 302, got %d", rec.Code)
	}

	if sessions.deletedToken != "tok-123" {
		t.Errorf("expected session 'tok-123' deleted, got %q", sessions.deletedToken)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected clearing cookie to be set")
	}

	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Errorf("expected expired empty cookie, got value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthHandler_ShowLogin_AlreadyAuthenticated(t *testing.T) {
	h := NewAuthHandler(testLogger(), &fakeUserService{}, &fakeSessionStore{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.ShowLogin(rec, requestAs(http.MethodGet, "/login", "user-1"))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect 302, got %d", rec.Code)
	}

	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %s", loc)
	}
}

func TestAuthHandler_ShowSignup_RendersForm(t *testing.T) {
	h := NewAuthHandler(testLogger(), &fakeUserService{}, &fakeSessionStore{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.ShowSignup(rec, httptest.NewRequest(http.MethodGet, "/signup", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "<form method=\"post\" action=\"/signup\">") {
		t.Error("expected signup form in page")
	}
}
