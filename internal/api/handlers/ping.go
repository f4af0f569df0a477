package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/disasterfeed/internal/ai"
)

const (
	pingSystemPrompt = `You are a health check. Respond with only a JSON object.`
	pingUserPrompt   = `Reply with {"pong": true}.`
)

// AIPing handles GET /ai/ping. It sends a fixed prompt to the configured
// provider and returns the raw answer as {"response": text}. A nil provider
// answers 503.
func AIPing(provider ai.AIProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			writeError(w, http.StatusServiceUnavailable, "AI provider is not configured")
			return
		}

		text, err := provider.Complete(r.Context(), pingSystemPrompt, pingUserPrompt)
		if err != nil {
			slog.Error("AI ping failed", "error", err)
			writeError(w, http.StatusBadGateway, "AI provider unavailable")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"response": text})
	}
}
