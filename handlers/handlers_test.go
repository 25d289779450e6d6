package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"SocialAutoPoster/config"
	"SocialAutoPoster/middleware"
	"SocialAutoPoster/models"
	"SocialAutoPoster/services"
	"SocialAutoPoster/state"
)

func testHandler(t *testing.T) (*Handler, *services.AuthService, *config.Config) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	cfg := &config.Config{
		Paths: config.Paths{
			ContentDir: filepath.Join(dir, "content"),
			StateDir:   dir,
			LogFile:    filepath.Join(dir, "logs.txt"),
		},
		Server: config.Server{
			JWTSecret:         "test-secret",
			AdminPasswordHash: string(hash),
		},
	}

	authService := services.NewAuthService(cfg)
	poster := services.NewPosterService(cfg, nil)
	return NewHandler(cfg, poster, authService, nil), authService, cfg
}

func testRouter(h *Handler, authService *services.AuthService) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware(authService))
	protected.HandleFunc("/state", h.GetState).Methods("GET")
	protected.HandleFunc("/logs", h.GetLogs).Methods("GET")
	protected.HandleFunc("/history", h.GetHistory).Methods("GET")
	return r
}

func TestHealthCheck(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"password":"hunter2"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "token") {
		t.Errorf("expected a token in response, got %q", rec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginBadPayload(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	h, authService, _ := testHandler(t)
	router := testRouter(h, authService)

	req := httptest.NewRequest("GET", "/api/state", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestProtectedRouteWithToken(t *testing.T) {
	h, authService, _ := testHandler(t)
	router := testRouter(h, authService)

	token, err := authService.GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/state", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, category := range []string{"daily", "friday", "ramadan"} {
		if !strings.Contains(rec.Body.String(), category) {
			t.Errorf("expected %s state in response: %s", category, rec.Body.String())
		}
	}
}

func TestGetStateUnknownType(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/api/state?type=weekly", nil)
	rec := httptest.NewRecorder()
	h.GetState(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestGetStateSingleType(t *testing.T) {
	h, _, cfg := testHandler(t)

	st := state.Default()
	st["facebook"].PostIndex = 6
	if err := state.Save(state.FileFor(cfg.Paths.StateDir, models.PostTypeDaily), st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/state?type=daily", nil)
	rec := httptest.NewRecorder()
	h.GetState(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"post_index":6`) {
		t.Errorf("saved cursor not reported: %s", rec.Body.String())
	}
}

func TestGetLogsTail(t *testing.T) {
	h, _, cfg := testHandler(t)

	lines := "line one\nline two\nline three\n"
	if err := os.WriteFile(cfg.Paths.LogFile, []byte(lines), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/logs?lines=2", nil)
	rec := httptest.NewRecorder()
	h.GetLogs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "line one") {
		t.Errorf("tail should drop oldest lines: %s", body)
	}
	if !strings.Contains(body, "line two") || !strings.Contains(body, "line three") {
		t.Errorf("tail missing expected lines: %s", body)
	}
}

func TestGetLogsMissingFile(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/api/logs", nil)
	rec := httptest.NewRecorder()
	h.GetLogs(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("missing log file should be an empty tail, got %d", rec.Code)
	}
}

func TestGetLogsBadParam(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/api/logs?lines=zero", nil)
	rec := httptest.NewRecorder()
	h.GetLogs(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetHistoryDisabled(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/api/history", nil)
	rec := httptest.NewRecorder()
	h.GetHistory(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when history is disabled, got %d", rec.Code)
	}
}

func TestTriggerPostUnknownType(t *testing.T) {
	h, _, _ := testHandler(t)

	req := httptest.NewRequest("POST", "/api/post?type=hourly", nil)
	rec := httptest.NewRecorder()
	h.TriggerPost(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown type, got %d", rec.Code)
	}
}
