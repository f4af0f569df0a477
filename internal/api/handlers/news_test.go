package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/disasterfeed/internal/models"
	"github.com/hoanghai1803/disasterfeed/internal/news"
	"github.com/hoanghai1803/disasterfeed/internal/pipeline"
)

type fakeRunner struct {
	articles []models.AnalyzedArticle
	err      error

	gotTopic string
	gotLimit int
}

func (f *fakeRunner) Run(_ context.Context, topic string, limit int) ([]models.AnalyzedArticle, error) {
	f.gotTopic = topic
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

// withURLParam sets a chi URL param on the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetNews(t *testing.T) {
	location := "Valencia"
	severity := 8
	runner := &fakeRunner{
		articles: []models.AnalyzedArticle{{
			Article: models.Article{Title: "Floods in Valencia", URL: "https://example.com/a"},
			Verdict: models.Verdict{
				IsRelevant:      true,
				Location:        &location,
				Severity:        &severity,
				Tags:            []string{"flood"},
				EstimatedDeaths: models.UnknownDeaths(),
			},
		}},
	}

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/news/flood", nil), "keyword", "flood")
	w := httptest.NewRecorder()

	GetNews(runner, 1).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if runner.gotTopic != "flood" {
		t.Errorf("got topic %q, want %q", runner.gotTopic, "flood")
	}
	if runner.gotLimit != 1 {
		t.Errorf("got limit %d, want default %d", runner.gotLimit, 1)
	}

	var got []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d articles, want 1", len(got))
	}
	if got[0]["title"] != "Floods in Valencia" {
		t.Errorf("title = %v, want %q", got[0]["title"], "Floods in Valencia")
	}
	if got[0]["location"] != "Valencia" {
		t.Errorf("location = %v, want %q", got[0]["location"], "Valencia")
	}
	if got[0]["estimated_deaths"] != "unknown" {
		t.Errorf("estimated_deaths = %v, want %q", got[0]["estimated_deaths"], "unknown")
	}
}

func TestGetNews_EmptyResultIsArray(t *testing.T) {
	runner := &fakeRunner{articles: []models.AnalyzedArticle{}}

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/news/calm", nil), "keyword", "calm")
	w := httptest.NewRecorder()

	GetNews(runner, 1).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("got body %q, want %q", body, "[]\n")
	}
}

func TestGetNews_LimitOverride(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{name: "explicit limit", query: "?limit=5", wantLimit: 5},
		{name: "all articles", query: "?limit=0", wantLimit: pipeline.AllArticles},
		{name: "blank keeps default", query: "?limit=", wantLimit: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{articles: []models.AnalyzedArticle{}}
			r := withURLParam(httptest.NewRequest(http.MethodGet, "/news/flood"+tt.query, nil), "keyword", "flood")
			w := httptest.NewRecorder()

			GetNews(runner, 2).ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
			}
			if runner.gotLimit != tt.wantLimit {
				t.Errorf("got limit %d, want %d", runner.gotLimit, tt.wantLimit)
			}
		})
	}
}

func TestGetNews_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "unparsable limit",
			query:      "?limit=many",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative limit",
			query:      "?limit=-1",
			err:        fmt.Errorf("%w: -1", pipeline.ErrInvalidLimit),
			wantStatus: http.StatusBadRequest,
			wantError:  "Limit must not be negative",
		},
		{
			name:       "empty topic",
			err:        news.ErrEmptyTopic,
			wantStatus: http.StatusBadRequest,
			wantError:  "Keyword must not be empty",
		},
		{
			name:       "upstream unavailable",
			err:        fmt.Errorf("fetching articles for %q: %w", "flood", news.ErrUpstreamUnavailable),
			wantStatus: http.StatusBadGateway,
			wantError:  "Failed to fetch news",
		},
		{
			name:       "any other failure",
			err:        errors.New("boom"),
			wantStatus: http.StatusBadGateway,
			wantError:  "Failed to fetch news",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{err: tt.err}
			r := withURLParam(httptest.NewRequest(http.MethodGet, "/news/flood"+tt.query, nil), "keyword", "flood")
			w := httptest.NewRecorder()

			GetNews(runner, 1).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("got error %q, want %q", body["error"], tt.wantError)
			}
		})
	}
}
