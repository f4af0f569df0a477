package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hoanghai1803/disasterfeed/internal/ai"
	"github.com/hoanghai1803/disasterfeed/internal/api/handlers"
	"github.com/hoanghai1803/disasterfeed/internal/social"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators served by the router. Provider and Scraper may
// be nil, in which case their endpoints answer 503. Gatherer may be nil to
// leave /metrics unmounted.
type Deps struct {
	News         handlers.NewsRunner
	ArticleLimit int
	Provider     ai.AIProvider
	Scraper      social.Scraper
	Gatherer     prometheus.Gatherer
}

// NewRouter creates and configures the HTTP router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Get("/", handlers.Hello())
	r.Get("/healthz", handlers.Health())

	r.Get("/news/{keyword}", handlers.GetNews(deps.News, deps.ArticleLimit))
	r.Get("/scrape_hashtag/{hashtag}", handlers.ScrapeHashtag(deps.Scraper))
	r.Get("/ai/ping", handlers.AIPing(deps.Provider))

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
