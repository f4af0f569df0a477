package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeProvider struct {
	answer string
	err    error

	gotSystem string
	gotUser   string
}

func (f *fakeProvider) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.gotSystem = systemPrompt
	f.gotUser = userPrompt
	return f.answer, f.err
}

func TestAIPing(t *testing.T) {
	provider := &fakeProvider{answer: `{"pong": true}`}

	w := httptest.NewRecorder()
	AIPing(provider).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if provider.gotSystem != pingSystemPrompt || provider.gotUser != pingUserPrompt {
		t.Errorf("provider got (%q, %q), want the ping prompts", provider.gotSystem, provider.gotUser)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["response"] != `{"pong": true}` {
		t.Errorf("got response %q, want %q", body["response"], `{"pong": true}`)
	}
}

func TestAIPing_Errors(t *testing.T) {
	tests := []struct {
		name       string
		provider   *fakeProvider
		wantStatus int
	}{
		{name: "not configured", provider: nil, wantStatus: http.StatusServiceUnavailable},
		{name: "provider failure", provider: &fakeProvider{err: errors.New("anthropic: unexpected status code 529")}, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AIPing(nil)
			if tt.provider != nil {
				handler = AIPing(tt.provider)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/ping", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
