package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/disasterfeed/internal/social"
)

// ScrapeHashtag handles GET /scrape_hashtag/{hashtag}. It relays the posts
// returned by the scraper service untouched. ?max_tweets=N caps the count;
// a missing, unparsable or non-positive value falls back to the default.
// A nil scraper answers 503.
func ScrapeHashtag(scraper social.Scraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scraper == nil {
			writeError(w, http.StatusServiceUnavailable, "Social scraping is not configured")
			return
		}

		hashtag := chi.URLParam(r, "hashtag")

		maxCount := social.DefaultMaxPosts
		if n, ok, err := queryInt(r, "max_tweets"); err == nil && ok && n > 0 {
			maxCount = n
		}

		posts, err := scraper.Scrape(r.Context(), hashtag, maxCount)
		if err != nil {
			slog.Error("failed to scrape hashtag", "hashtag", hashtag, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to scrape hashtag")
			return
		}

		writeJSON(w, http.StatusOK, posts)
	}
}
