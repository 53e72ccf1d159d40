package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sumzhq/sumz-portal/internal/auth"
	"github.com/sumzhq/sumz-portal/internal/model"
	"github.com/sumzhq/sumz-portal/internal/service"
)

// fakeKeyService is a KeyService backed by canned results.
type fakeKeyService struct {
	createKey string
	createErr error
	listKeys  []*model.APIKey
	listErr   error
	regenKey  string
	regenErr  error
	deleteErr error

	lastUserID string
	lastKey    string
}

func (f *fakeKeyService) Create(ctx context.Context, userID string) (string, error) {
	f.lastUserID = userID
	return f.createKey, f.createErr
}

func (f *fakeKeyService) List(ctx context.Context, userID string) ([]*model.APIKey, error) {
	f.lastUserID = userID
	return f.listKeys, f.listErr
}

func (f *fakeKeyService) Regenerate(ctx context.Context, userID, keyValue string) (string, error) {
	f.lastUserID = userID
	f.lastKey = keyValue
	return f.regenKey, f.regenErr
}

func (f *fakeKeyService) Delete(ctx context.Context, userID, keyValue string) error {
	f.lastUserID = userID
	f.lastKey = keyValue
	return f.deleteErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func keyRouter(h *APIKeyHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api-keys", h.KeysPage)
	r.Post("/generate-key", h.GenerateKey)
	r.Get("/api-keys-data", h.KeysData)
	r.Post("/api-keys/{key}/regenerate", h.RegenerateKey)
	r.Delete("/api-keys/{key}", h.DeleteKey)
	return r
}

func requestAs(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		ctx := auth.ContextWithUser(req.Context(), &model.User{ID: userID, Username: "alice"})
		req = req.WithContext(ctx)
	}
	return req
}

func TestAPIKeyHandler_GenerateKey(t *testing.T) {
	svc := &fakeKeyService{createKey: "abcDEF123abcDEF123abcDEF123abcDE"}
	h := NewAPIKeyHandler(testLogger(), svc)

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodPost, "/generate-key", "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body["api_key"] != svc.createKey {
		t.Errorf("expected api_key %q, got %q", svc.createKey, body["api_key"])
	}

	if svc.lastUserID != "user-1" {
		t.Errorf("expected create for user-1, got %q", svc.lastUserID)
	}
}

func TestAPIKeyHandler_GenerateKey_QuotaExceeded(t *testing.T) {
	svc := &fakeKeyService{createErr: service.ErrQuotaExceeded}
	h := NewAPIKeyHandler(testLogger(), svc)

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodPost, "/generate-key", "user-1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body["message"] != "Maximum number of API keys reached." {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestAPIKeyHandler_GenerateKey_NoSession(t *testing.T) {
	h := NewAPIKeyHandler(testLogger(), &fakeKeyService{})

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodPost, "/generate-key", ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAPIKeyHandler_KeysData(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	svc := &fakeKeyService{
		listKeys: []*model.APIKey{
			{Key: "k1k1k1k1k1k1k1k1k1k1k1k1k1k1k1k1", Status: model.StatusActive, CreatedAt: created},
		},
	}
	h := NewAPIKeyHandler(testLogger(), svc)

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodGet, "/api-keys-data", "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		APIKeys []model.APIKeyResponse `json:"api_keys"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(body.APIKeys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(body.APIKeys))
	}

	if body.APIKeys[0].CreatedAt != "2025-03-14 09:26:53" {
		t.Errorf("unexpected created_at format: %q", body.APIKeys[0].CreatedAt)
	}

	if body.APIKeys[0].Status != "Active" {
		t.Errorf("unexpected status: %q", body.APIKeys[0].Status)
	}
}

func TestAPIKeyHandler_KeysData_EmptyList(t *testing.T) {
	h := NewAPIKeyHandler(testLogger(), &fakeKeyService{})

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodGet, "/api-keys-data", "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// An account with no keys gets an empty array, not null.
	if got := rec.Body.String(); got != "{\"api_keys\":[]}\n" {
		t.Errorf("unexpected body: %q", got)
	}
}

func TestAPIKeyHandler_RegenerateKey(t *testing.T) {
	svc := &fakeKeyService{regenKey: "newnewnewnewnewnewnewnewnewnewne"}
	h := NewAPIKeyHandler(testLogger(), svc)

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodPost, "/api-keys/oldoldold/regenerate", "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if svc.lastKey != "oldoldold" {
		t.Errorf("expected lookup by key 'oldoldold', got %q", svc.lastKey)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body["api_key"] != svc.regenKey {
		t.Errorf("expected new api_key %q, got %q", svc.regenKey, body["api_key"])
	}
}

func TestAPIKeyHandler_RegenerateKey_NotFound(t *testing.T) {
	svc := &fakeKeyService{regenErr: service.ErrKeyNotFound}
	h := NewAPIKeyHandler(testLogger(), svc)

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodPost, "/api-keys/missing/regenerate", "user-1"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body["message"] != "API key not found." {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestAPIKeyHandler_DeleteKey(t *testing.T) {
	svc := &fakeKeyService{}
	h := NewAPIKeyHandler(testLogger(), svc)

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodDelete, "/api-keys/somekey", "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body["message"] != "API key deleted successfully." {
		t.Errorf("unexpected message: %q", body["message"])
	}

	if svc.lastKey != "somekey" {
		t.Errorf("expected delete of 'somekey', got %q", svc.lastKey)
	}
}

func TestAPIKeyHandler_DeleteKey_NotFound(t *testing.T) {
	svc := &fakeKeyService{deleteErr: service.ErrKeyNotFound}
	h := NewAPIKeyHandler(testLogger(), svc)

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodDelete, "/api-keys/missing", "user-1"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestAPIKeyHandler_KeysPage(t *testing.T) {
	h := NewAPIKeyHandler(testLogger(), &fakeKeyService{})

	rec := httptest.NewRecorder()
	keyRouter(h).ServeHTTP(rec, requestAs(http.MethodGet, "/api-keys", "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
}
