package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHello(t *testing.T) {
	w := httptest.NewRecorder()
	Hello().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Body.String(); got != "Hello, World!" {
		t.Errorf("got body %q, want %q", got, "Hello, World!")
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Body.String(); got != "{\"ok\":true}\n" {
		t.Errorf("got body %q, want %q", got, "{\"ok\":true}\n")
	}
}
