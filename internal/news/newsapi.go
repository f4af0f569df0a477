package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hoanghai1803/disasterfeed/internal/models"
)

// Compile-time interface check.
var _ Source = (*NewsAPISource)(nil)

const (
	defaultNewsAPIURL = "https://newsapi.org"
	defaultLanguage   = "en"
)

// NewsAPISource searches the NewsAPI /v2/everything endpoint.
type NewsAPISource struct {
	baseURL  string
	apiKey   string
	language string
	pageSize int
	client   *http.Client
}

// NewNewsAPISource creates a NewsAPISource. Empty BaseURL and Language fall
// back to the public endpoint and English. A zero PageSize leaves the page
// size to the upstream default.
func NewNewsAPISource(cfg Config) *NewsAPISource {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultNewsAPIURL
	}
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	return &NewsAPISource{
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		language: language,
		pageSize: cfg.PageSize,
		client:   newHTTPClient(cfg.Timeout),
	}
}

// newsAPIResponse is the body of both successful and failed NewsAPI calls.
type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []models.Article `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

// Fetch runs one full-text search for topic sorted by publish time.
func (s *NewsAPISource) Fetch(ctx context.Context, topic string) ([]models.Article, error) {
	topic, err := normalizeTopic(topic)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("language", s.language)
	params.Set("sortBy", "publishedAt")
	if s.pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(s.pageSize))
	}
	reqURL := s.baseURL + "/v2/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)
	req.Header.Set("Accept", "application/json")

	slog.Debug("searching NewsAPI", "topic", topic, "language", s.language)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: newsapi: sending request: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: newsapi: reading response body: %w", ErrUpstreamUnavailable, err)
	}

	var apiResp newsAPIResponse
	decodeErr := json.Unmarshal(body, &apiResp)

	if resp.StatusCode != http.StatusOK || apiResp.Status == "error" {
		if decodeErr == nil && apiResp.Message != "" {
			return nil, fmt.Errorf("%w: newsapi: status %d: %s: %s",
				ErrUpstreamUnavailable, resp.StatusCode, apiResp.Code, apiResp.Message)
		}
		return nil, fmt.Errorf("%w: newsapi: unexpected status code: %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: newsapi: parsing response: %w", ErrUpstreamUnavailable, decodeErr)
	}

	articles := apiResp.Articles
	if articles == nil {
		articles = []models.Article{}
	}
	sortNewestFirst(articles)

	slog.Info("fetched articles", "source", "newsapi", "topic", topic,
		"items", len(articles), "total_results", apiResp.TotalResults)
	return articles, nil
}
