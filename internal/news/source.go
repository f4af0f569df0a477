// Package news fetches candidate articles for a topic from external news
// search services.
package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hoanghai1803/disasterfeed/internal/models"
)

var (
	// ErrUpstreamUnavailable is returned when the search service could not be
	// reached or answered with a non-success status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrEmptyTopic is returned when Fetch is called with a blank topic.
	ErrEmptyTopic = errors.New("topic must not be empty")
)

const defaultTimeout = 30 * time.Second

// Source fetches raw articles for a topic, most recent first. Each call makes
// exactly one outbound request and never retries.
type Source interface {
	Fetch(ctx context.Context, topic string) ([]models.Article, error)
}

// Config selects and configures a Source.
type Config struct {
	Provider string // "newsapi" | "rss"
	APIKey   string
	BaseURL  string
	FeedURL  string
	Language string
	PageSize int
	Timeout  time.Duration
}

// NewSource creates the Source named by cfg.Provider.
func NewSource(cfg Config) (Source, error) {
	switch cfg.Provider {
	case "newsapi":
		return NewNewsAPISource(cfg), nil
	case "rss":
		if cfg.FeedURL != "" && !strings.Contains(cfg.FeedURL, queryPlaceholder) {
			return nil, fmt.Errorf("rss feed url %q must contain %s", cfg.FeedURL, queryPlaceholder)
		}
		return NewRSSSource(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported news provider: %s", cfg.Provider)
	}
}

// normalizeTopic trims surrounding whitespace and rejects blank topics.
func normalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}
	return topic, nil
}

// sortNewestFirst orders articles by publish time descending. Articles
// without a publish time keep their relative order at the end.
func sortNewestFirst(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].PublishedAt, articles[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			base: http.DefaultTransport,
		},
	}
}

// userAgentTransport wraps an http.RoundTripper to inject a custom User-Agent
// header on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json, application/rss+xml, application/xml;q=0.9, */*;q=0.8")
	}
	return t.base.RoundTrip(req)
}

const userAgent = "Mozilla/5.0 (compatible; disasterfeed/1.0; +https://github.com/hoanghai1803/disasterfeed)"
