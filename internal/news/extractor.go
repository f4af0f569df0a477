package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	defaultMaxWords = 5000
	maxPageBytes    = 5 << 20
)

// ContentExtractor fetches the full readable text of an article page.
type ContentExtractor interface {
	Extract(ctx context.Context, articleURL string) (string, error)
}

// Compile-time interface check.
var _ ContentExtractor = (*ReadabilityExtractor)(nil)

// ReadabilityExtractor extracts article text with go-readability.
type ReadabilityExtractor struct {
	client   *http.Client
	maxWords int
}

// NewReadabilityExtractor creates an extractor whose page fetches time out
// after timeout and whose output is truncated to maxWords words. Zero values
// select 30 seconds and 5000 words.
func NewReadabilityExtractor(timeout time.Duration, maxWords int) *ReadabilityExtractor {
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}
	return &ReadabilityExtractor{client: newHTTPClient(timeout), maxWords: maxWords}
}

// Extract fetches articleURL and returns its main text. Non-200 responses
// and non-HTML pages are errors.
func (e *ReadabilityExtractor) Extract(ctx context.Context, articleURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pageURL, err := url.ParseRequestURI(articleURL)
	if err != nil {
		return "", fmt.Errorf("parsing article url %q: %w", articleURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %q: %w", articleURL, err)
	}
	browserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %q: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %q: unexpected status code %d", articleURL, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return "", fmt.Errorf("fetching %q: not an HTML page (Content-Type %q)", articleURL, ct)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return "", fmt.Errorf("extracting article from %q: %w", articleURL, err)
	}

	return truncateWords(strings.TrimSpace(article.TextContent), e.maxWords), nil
}

// browserHeaders sets a browser-like Accept header so sites that check it
// don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
