package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"renal-calculator/internal/auth"
	"renal-calculator/internal/storage"

	"github.com/sirupsen/logrus"
)

func setupRouter(t *testing.T) http.Handler {
	db, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	gdb, err := storage.OpenGorm(db)
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRouter(Deps{
		DB:   db,
		Auth: auth.NewService(gdb, "router-secret", time.Hour, nil),
		Log:  log,
	})
}

func TestRouterRoutes(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/api/v1/calculators", "", http.StatusOK},
		{http.MethodGet, "/api/v1/presets", "", http.StatusOK},
		{http.MethodPost, "/api/v1/crrt/fluid-planning", `{"fluids":[]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/crrt/hyponatremia", `{"target_na":130}`, http.StatusOK},
		{http.MethodPost, "/api/v1/hd/hyponatremia", `{}`, http.StatusOK},
		{http.MethodPost, "/api/v1/electrolyte-free-water", `{}`, http.StatusOK},
		{http.MethodPost, "/api/v1/calculate", `{"expression":"1+1"}`, http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/history", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/logout", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/crrt/fluid-planning", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouterRegisterAndLogin(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewBufferString(`{"login":"testuser","password":"secret123"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 on register, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString(`{"login":"testuser","password":"secret123"}`))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 on login, got %d", w.Code)
	}
}
