package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hoanghai1803/disasterfeed/internal/models"
	"github.com/mmcdole/gofeed"
)

// Compile-time interface check.
var _ Source = (*RSSSource)(nil)

// queryPlaceholder marks where the escaped topic goes in an RSS feed URL.
const queryPlaceholder = "{query}"

// DefaultRSSFeedURL is the Google News search feed.
const DefaultRSSFeedURL = "https://news.google.com/rss/search?q={query}&hl=en-US&gl=US&ceid=US:en"

// RSSSource searches a news feed whose URL embeds the query, such as the
// Google News search feed.
type RSSSource struct {
	feedURL string
	client  *http.Client
}

// NewRSSSource creates an RSSSource. An empty FeedURL uses DefaultRSSFeedURL.
func NewRSSSource(cfg Config) *RSSSource {
	feedURL := cfg.FeedURL
	if feedURL == "" {
		feedURL = DefaultRSSFeedURL
	}
	return &RSSSource{
		feedURL: feedURL,
		client:  newHTTPClient(cfg.Timeout),
	}
}

// Fetch retrieves and parses the search feed for topic.
func (s *RSSSource) Fetch(ctx context.Context, topic string) ([]models.Article, error) {
	topic, err := normalizeTopic(topic)
	if err != nil {
		return nil, err
	}

	feedURL := strings.ReplaceAll(s.feedURL, queryPlaceholder, url.QueryEscape(topic))

	fp := gofeed.NewParser()
	fp.Client = s.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: rss: parsing feed: %w", ErrUpstreamUnavailable, err)
	}

	articles := parseFeedItems(feed)
	sortNewestFirst(articles)

	slog.Info("fetched articles", "source", "rss", "topic", topic, "items", len(articles))
	return articles, nil
}

// parseFeedItems converts gofeed items into articles. Items with an empty
// title or link are skipped. HTML in descriptions and content is reduced to
// plain text.
func parseFeedItems(feed *gofeed.Feed) []models.Article {
	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		var publishedAt *time.Time
		switch {
		case item.PublishedParsed != nil:
			t := *item.PublishedParsed
			publishedAt = &t
		case item.UpdatedParsed != nil:
			t := *item.UpdatedParsed
			publishedAt = &t
		}

		description := htmlToText(item.Description)
		content := htmlToText(item.Content)
		if content == "" {
			content = description
		}

		article := models.Article{
			Source:      models.ArticleSource{Name: feed.Title},
			Title:       item.Title,
			Description: models.StringPtr(description),
			URL:         item.Link,
			PublishedAt: publishedAt,
			Content:     models.StringPtr(content),
		}
		if author := itemAuthor(item); author != "" {
			article.Author = &author
		}
		if item.Image != nil && item.Image.URL != "" {
			img := item.Image.URL
			article.URLToImage = &img
		}

		articles = append(articles, article)
	}
	return articles
}

func itemAuthor(item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil && item.Authors[0].Name != "" {
		return item.Authors[0].Name
	}
	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}
