package main_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"renal-calculator/internal/auth"
	"renal-calculator/internal/server"
	"renal-calculator/internal/storage"

	"github.com/sirupsen/logrus"
)

func SetupServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	gdb, err := storage.OpenGorm(db)
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	return server.NewRouter(server.Deps{
		DB:           db,
		Auth:         auth.NewService(gdb, "integration-secret", time.Hour, auth.NewMemoryRevoker()),
		Log:          log,
		HistoryLimit: 10,
	})
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIntegration_FullFlow(t *testing.T) {
	handler := SetupServer(t)

	w := do(t, handler, http.MethodPost, "/api/v1/register", "", `{"login":"user1","password":"pass123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("register failed: status %d", w.Code)
	}

	w = do(t, handler, http.MethodPost, "/api/v1/login", "", `{"login":"user1","password":"pass123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: status %d", w.Code)
	}
	var loginResp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, ok := loginResp["token"]
	if !ok || token == "" {
		t.Fatal("token not found in login response")
	}

	w = do(t, handler, http.MethodPost, "/api/v1/calculate", token, `{"expression":"2+2*2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("calculate failed: status %d", w.Code)
	}
	var calcResp struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(w.Body).Decode(&calcResp); err != nil {
		t.Fatalf("failed to decode calculate response: %v", err)
	}
	if calcResp.Result != "6" {
		t.Fatalf("expected result 6, got %s", calcResp.Result)
	}

	w = do(t, handler, http.MethodPost, "/api/v1/hd/hyponatremia", token,
		`{"serum_na":120,"tbw":35,"blood_flow_rate":200,"duration":120,"dialysate_na":130,"uf_volume":2,"d5w_volume_ml":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("hd calculation failed: status %d", w.Code)
	}

	w = do(t, handler, http.MethodPost, "/api/v1/crrt/hyponatremia", "",
		`{"target_na":130,"diluent":"D5W","dialysate_na":140,"dialysate_rate":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous crrt calculation failed: status %d", w.Code)
	}

	w = do(t, handler, http.MethodGet, "/api/v1/history", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("history failed: status %d", w.Code)
	}
	var histResp struct {
		Calculations []struct {
			Kind string `json:"kind"`
		} `json:"calculations"`
	}
	if err := json.NewDecoder(w.Body).Decode(&histResp); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(histResp.Calculations) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(histResp.Calculations))
	}
	kinds := map[string]bool{}
	for _, c := range histResp.Calculations {
		kinds[c.Kind] = true
	}
	if !kinds["expression"] || !kinds["hd-hyponatremia"] {
		t.Fatalf("unexpected history kinds %v", kinds)
	}

	w = do(t, handler, http.MethodPost, "/api/v1/logout", token, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout failed: status %d", w.Code)
	}
	w = do(t, handler, http.MethodGet, "/api/v1/history", token, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestIntegration_UnauthorizedCalculate(t *testing.T) {
	handler := SetupServer(t)

	w := do(t, handler, http.MethodPost, "/api/v1/calculate", "", `{"expression":"2+2"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestIntegration_BadTokenOnOptionalRoute(t *testing.T) {
	handler := SetupServer(t)

	w := do(t, handler, http.MethodPost, "/api/v1/electrolyte-free-water", "forged", `{"serum_na":140}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestIntegration_InvalidLogin(t *testing.T) {
	handler := SetupServer(t)

	w := do(t, handler, http.MethodPost, "/api/v1/login", "", `{"login":"nonexistent","password":"pass"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized for invalid login, got %d", w.Code)
	}
}

func TestIntegration_InvalidRegister(t *testing.T) {
	handler := SetupServer(t)

	w := do(t, handler, http.MethodPost, "/api/v1/register", "", `{"login":"","password":"pass"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request for empty login, got %d", w.Code)
	}
}
