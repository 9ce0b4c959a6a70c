package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud", "text"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestMiddlewareLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", "json")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	h := Middleware(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var line map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["path"] != "/api/v1/presets" {
		t.Fatalf("expected path field, got %v", line["path"])
	}
	if line["status"] != float64(http.StatusTeapot) {
		t.Fatalf("expected status 418, got %v", line["status"])
	}
}
