package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nafsma/legis-tracker/app/state"
)

func newTestServer(t *testing.T, apiAccessKey string) (*state.Store, string, http.Handler) {
	t.Helper()
	dir := t.TempDir()
	store := state.NewStore(filepath.Join(dir, "state.json"))
	outputDir := filepath.Join(dir, "digests")
	engine := NewServer(NewHandler(store, outputDir), apiAccessKey)
	return store, outputDir, engine
}

func TestGetHealth(t *testing.T) {
	store, _, server := newTestServer(t, "")
	store.Load().Bills["119-hr-1"] = state.TrackedBill{BillID: "119-hr-1"}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["tracked_items"] != float64(1) {
		t.Errorf("Expected 1 tracked item, got %v", body["tracked_items"])
	}
}

func TestGetState(t *testing.T) {
	store, _, server := newTestServer(t, "")
	snapshot := store.Load()
	snapshot.Bills["119-hr-1"] = state.TrackedBill{BillID: "119-hr-1"}
	snapshot.DisasterDeclarations["1-TX-Statewide"] = state.TrackedDisaster{DisasterNumber: 1}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/state", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Total  int            `json:"total"`
		Counts map[string]int `json:"counts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 2 {
		t.Errorf("Expected total 2, got %d", body.Total)
	}
	if body.Counts["bills"] != 1 || body.Counts["disaster_declarations"] != 1 {
		t.Errorf("Unexpected counts %v", body.Counts)
	}
}

func TestGetLatestDigest(t *testing.T) {
	_, outputDir, server := newTestServer(t, "")

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/digest/latest", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 with no digests, got %d", w.Code)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, body := range map[string]string{
		"digest-2026-08-29.md": "older",
		"digest-2026-08-30.md": "# Latest digest",
		"notes.txt":            "ignored",
	} {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/digest/latest", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "# Latest digest" {
		t.Errorf("Expected latest digest body, got %q", w.Body.String())
	}
	if w.Header().Get("X-Digest-File") != "digest-2026-08-30.md" {
		t.Errorf("Unexpected digest file header %q", w.Header().Get("X-Digest-File"))
	}
}

func TestAuthRequired(t *testing.T) {
	_, _, server := newTestServer(t, "secret")

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/state", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without key, got %d", w.Code)
	}

	req := httptest.NewRequest("GET", "/state", nil)
	req.Header.Set("X-API-Key", "wrong")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong key, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/state", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with correct key, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/state", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with bearer token, got %d", w.Code)
	}

	// Health stays public.
	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected public health endpoint, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["service"] != "NAFSMA Legislative Tracker" {
		t.Errorf("Unexpected service name %v", body["service"])
	}
}
