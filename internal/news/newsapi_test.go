package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const newsAPIBody = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": null, "name": "Daily Planet"},
      "author": "Lois Lane",
      "title": "Older storm coverage",
      "description": "Winds pick up.",
      "url": "https://example.com/older",
      "urlToImage": null,
      "publishedAt": "2024-03-01T08:00:00Z",
      "content": "Winds pick up across the bay... [+1200 chars]"
    },
    {
      "source": {"id": "bbc-news", "name": "BBC News"},
      "author": null,
      "title": "Flood hits city X",
      "description": "Rivers burst their banks.",
      "url": "https://example.com/flood",
      "urlToImage": "https://example.com/flood.jpg",
      "publishedAt": "2024-03-02T08:00:00Z",
      "content": "Rivers burst their banks overnight."
    }
  ]
}`

func TestNewsAPISourceFetch(t *testing.T) {
	t.Run("sends search parameters and decodes articles", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v2/everything" {
				t.Errorf("path = %q, want /v2/everything", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("q") != "flood" {
				t.Errorf("q = %q, want flood", q.Get("q"))
			}
			if q.Get("language") != "en" {
				t.Errorf("language = %q, want en", q.Get("language"))
			}
			if q.Get("sortBy") != "publishedAt" {
				t.Errorf("sortBy = %q, want publishedAt", q.Get("sortBy"))
			}
			if q.Has("pageSize") {
				t.Errorf("pageSize should be omitted when unset")
			}
			if r.Header.Get("X-Api-Key") != "news-key" {
				t.Errorf("X-Api-Key = %q, want news-key", r.Header.Get("X-Api-Key"))
			}
			w.Write([]byte(newsAPIBody))
		}))
		defer srv.Close()

		src := NewNewsAPISource(Config{BaseURL: srv.URL, APIKey: "news-key"})
		articles, err := src.Fetch(context.Background(), "flood")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if len(articles) != 2 {
			t.Fatalf("got %d articles, want 2", len(articles))
		}

		first := articles[0]
		if first.Title != "Flood hits city X" {
			t.Errorf("articles[0].Title = %q, want newest first", first.Title)
		}
		if first.Source.ID == nil || *first.Source.ID != "bbc-news" {
			t.Errorf("Source.ID = %v, want bbc-news", first.Source.ID)
		}
		if first.URLToImage == nil || *first.URLToImage != "https://example.com/flood.jpg" {
			t.Errorf("URLToImage = %v", first.URLToImage)
		}
		if articles[1].Author == nil || *articles[1].Author != "Lois Lane" {
			t.Errorf("articles[1].Author = %v, want Lois Lane", articles[1].Author)
		}
	})

	t.Run("page size is sent when configured", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("pageSize"); got != "5" {
				t.Errorf("pageSize = %q, want 5", got)
			}
			if got := r.URL.Query().Get("language"); got != "fr" {
				t.Errorf("language = %q, want fr", got)
			}
			w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
		}))
		defer srv.Close()

		src := NewNewsAPISource(Config{BaseURL: srv.URL, PageSize: 5, Language: "fr"})
		articles, err := src.Fetch(context.Background(), "inondation")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if articles == nil || len(articles) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", articles)
		}
	})

	t.Run("error status carries upstream message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
		}))
		defer srv.Close()

		src := NewNewsAPISource(Config{BaseURL: srv.URL})
		_, err := src.Fetch(context.Background(), "flood")
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
		if !strings.Contains(err.Error(), "apiKeyInvalid") {
			t.Errorf("error %q should mention the upstream code", err)
		}
	})

	t.Run("undecodable body is upstream unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer srv.Close()

		src := NewNewsAPISource(Config{BaseURL: srv.URL})
		_, err := src.Fetch(context.Background(), "flood")
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})

	t.Run("unreachable server is upstream unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		src := NewNewsAPISource(Config{BaseURL: srv.URL})
		_, err := src.Fetch(context.Background(), "flood")
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})

	t.Run("blank topic makes no request", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		src := NewNewsAPISource(Config{BaseURL: srv.URL})
		_, err := src.Fetch(context.Background(), "")
		if !errors.Is(err, ErrEmptyTopic) {
			t.Fatalf("expected ErrEmptyTopic, got %v", err)
		}
		if called {
			t.Error("no request should be made for a blank topic")
		}
	})
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "newsapi", cfg: Config{Provider: "newsapi"}},
		{name: "rss", cfg: Config{Provider: "rss", FeedURL: DefaultRSSFeedURL}},
		{name: "rss default feed", cfg: Config{Provider: "rss"}},
		{name: "rss without placeholder", cfg: Config{Provider: "rss", FeedURL: "https://example.com/feed"}, wantErr: true},
		{name: "unknown", cfg: Config{Provider: "bing"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src == nil {
				t.Fatal("expected non-nil source")
			}
		})
	}
}
