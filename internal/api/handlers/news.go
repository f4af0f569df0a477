package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/disasterfeed/internal/models"
	"github.com/hoanghai1803/disasterfeed/internal/news"
	"github.com/hoanghai1803/disasterfeed/internal/pipeline"
)

// NewsRunner runs the fetch-and-classify pipeline for a topic.
type NewsRunner interface {
	Run(ctx context.Context, topic string, articleLimit int) ([]models.AnalyzedArticle, error)
}

// GetNews handles GET /news/{keyword}. It returns the relevant analyzed
// articles for the keyword. The optional ?limit=N query parameter overrides
// defaultLimit; 0 classifies every fetched article.
func GetNews(runner NewsRunner, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := chi.URLParam(r, "keyword")

		limit := defaultLimit
		if n, ok, err := queryInt(r, "limit"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		} else if ok {
			limit = n
		}

		articles, err := runner.Run(r.Context(), keyword, limit)
		if err != nil {
			switch {
			case errors.Is(err, pipeline.ErrInvalidLimit):
				writeError(w, http.StatusBadRequest, "Limit must not be negative")
			case errors.Is(err, news.ErrEmptyTopic):
				writeError(w, http.StatusBadRequest, "Keyword must not be empty")
			default:
				slog.Error("failed to fetch news", "keyword", keyword, "error", err)
				writeError(w, http.StatusBadGateway, "Failed to fetch news")
			}
			return
		}

		writeJSON(w, http.StatusOK, articles)
	}
}
