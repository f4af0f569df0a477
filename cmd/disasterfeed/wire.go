package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hoanghai1803/disasterfeed/internal/ai"
	"github.com/hoanghai1803/disasterfeed/internal/classify"
	"github.com/hoanghai1803/disasterfeed/internal/config"
	"github.com/hoanghai1803/disasterfeed/internal/news"
	"github.com/hoanghai1803/disasterfeed/internal/pipeline"
	"github.com/hoanghai1803/disasterfeed/internal/social"
	"github.com/prometheus/client_golang/prometheus"
)

// buildProvider creates the configured AI provider. The returned cleanup
// releases it.
func buildProvider(ctx context.Context, cfg *config.Config) (ai.AIProvider, func(), error) {
	provider, err := ai.NewProvider(ctx, ai.ProviderConfig{
		Provider:  cfg.AI.Provider,
		APIKey:    cfg.AI.APIKey,
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating AI provider: %w", err)
	}
	cleanup := func() {
		if c, ok := provider.(io.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("closing AI provider", "error", err)
			}
		}
	}
	slog.Info("AI provider configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	return provider, cleanup, nil
}

// buildPipeline wires the article source, classifier and optional extractor
// from cfg around provider.
func buildPipeline(cfg *config.Config, provider ai.AIProvider, reg prometheus.Registerer) (*pipeline.Pipeline, error) {
	source, err := news.NewSource(news.Config{
		Provider: cfg.News.Provider,
		APIKey:   cfg.News.APIKey,
		BaseURL:  cfg.News.BaseURL,
		FeedURL:  cfg.News.FeedURL,
		Language: cfg.News.Language,
		PageSize: cfg.News.PageSize,
		Timeout:  cfg.Pipeline.FetchTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating news source: %w", err)
	}

	opts := pipeline.Options{
		Concurrency:     cfg.Pipeline.Concurrency,
		FetchTimeout:    cfg.Pipeline.FetchTimeout(),
		ClassifyTimeout: cfg.Pipeline.ClassifyTimeout(),
	}
	if cfg.News.ExtractFullText {
		opts.Extractor = news.NewReadabilityExtractor(cfg.Pipeline.FetchTimeout(), 0)
	}
	if reg != nil {
		opts.Metrics = pipeline.NewMetrics(reg)
	}

	classifier := classify.New(provider, classify.WithRequestsPerMinute(cfg.AI.RequestsPerMinute))
	return pipeline.New(source, classifier, opts), nil
}

// buildScraper returns nil when no scraper endpoint is configured.
func buildScraper(cfg *config.Config) social.Scraper {
	if cfg.Social.Endpoint == "" {
		return nil
	}
	return social.NewHTTPScraper(cfg.Social.Endpoint, social.Credentials{
		Mail:     cfg.Social.Mail,
		Username: cfg.Social.Username,
		Password: cfg.Social.Password,
	}, cfg.Social.Timeout())
}
