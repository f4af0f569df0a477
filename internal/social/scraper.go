// Package social is the boundary to the social-media scraping collaborator.
// The collaborator owns its browser session and login; this package only
// hands it credentials and a hashtag and passes its posts through untouched.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hoanghai1803/disasterfeed/internal/models"
)

// ErrScrapeFailed is returned when the collaborator could not produce posts.
var ErrScrapeFailed = errors.New("scrape failed")

// DefaultMaxPosts is used when the caller does not ask for a post count.
const DefaultMaxPosts = 50

// Scraper produces up to maxCount posts for a hashtag.
type Scraper interface {
	Scrape(ctx context.Context, hashtag string, maxCount int) ([]models.PostRecord, error)
}

// Credentials authenticate the collaborator against the social network.
type Credentials struct {
	Mail     string `json:"mail"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Compile-time interface check.
var _ Scraper = (*HTTPScraper)(nil)

// HTTPScraper delegates scraping to an out-of-process scraper service.
type HTTPScraper struct {
	endpoint    string
	credentials Credentials
	client      *http.Client
}

// NewHTTPScraper creates a scraper that POSTs to {endpoint}/scrape. Scraping
// drives a real browser, so the timeout is generous; zero selects 5 minutes.
func NewHTTPScraper(endpoint string, creds Credentials, timeout time.Duration) *HTTPScraper {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &HTTPScraper{
		endpoint:    strings.TrimRight(endpoint, "/"),
		credentials: creds,
		client:      &http.Client{Timeout: timeout},
	}
}

type scrapeRequest struct {
	Hashtag     string      `json:"hashtag"`
	MaxTweets   int         `json:"max_tweets"`
	Credentials Credentials `json:"credentials"`
}

// Scrape asks the service for posts tagged hashtag and returns its JSON
// array element by element without decoding the posts.
func (s *HTTPScraper) Scrape(ctx context.Context, hashtag string, maxCount int) ([]models.PostRecord, error) {
	hashtag = strings.TrimPrefix(strings.TrimSpace(hashtag), "#")
	if hashtag == "" {
		return nil, fmt.Errorf("%w: hashtag must not be empty", ErrScrapeFailed)
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxPosts
	}

	body, err := json.Marshal(scrapeRequest{
		Hashtag:     hashtag,
		MaxTweets:   maxCount,
		Credentials: s.credentials,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Info("scraping hashtag", "hashtag", hashtag, "max_tweets", maxCount)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending request: %w", ErrScrapeFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrScrapeFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d: %s",
			ErrScrapeFailed, resp.StatusCode, strings.TrimSpace(string(truncateBody(respBody))))
	}

	var posts []models.PostRecord
	if err := json.Unmarshal(respBody, &posts); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %w", ErrScrapeFailed, err)
	}
	if posts == nil {
		posts = []models.PostRecord{}
	}
	return posts, nil
}

func truncateBody(b []byte) []byte {
	const limit = 512
	if len(b) > limit {
		return b[:limit]
	}
	return b
}
