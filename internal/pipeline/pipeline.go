// Package pipeline drives fetch, classify, filter and assemble for one topic.
//
// A run fetches candidate articles once, classifies up to an article limit of
// them in source order, and keeps only the articles whose verdict marks them
// relevant. Only a failed fetch fails the run; every per-article problem
// degrades to exclusion.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hoanghai1803/disasterfeed/internal/classify"
	"github.com/hoanghai1803/disasterfeed/internal/models"
	"github.com/hoanghai1803/disasterfeed/internal/news"
)

// DefaultArticleLimit is the number of fetched articles classified when the
// caller does not choose. It keeps LLM cost at one call per request.
const DefaultArticleLimit = 1

// AllArticles as an article limit classifies every fetched article.
const AllArticles = 0

// ErrInvalidLimit is returned for a negative article limit.
var ErrInvalidLimit = errors.New("article limit must not be negative")

// ArticleSource fetches raw candidate articles for a topic.
type ArticleSource interface {
	Fetch(ctx context.Context, topic string) ([]models.Article, error)
}

// Classifier produces a verdict for one article.
type Classifier interface {
	Classify(ctx context.Context, article models.Article, topic string) (models.Verdict, error)
}

// Options tunes a Pipeline. The zero value classifies sequentially without
// timeouts, extraction or metrics.
type Options struct {
	// Concurrency bounds parallel classification calls. Values below 1 mean
	// strictly sequential.
	Concurrency int

	// FetchTimeout and ClassifyTimeout bound each outbound call. Zero means
	// no timeout beyond the caller's context.
	FetchTimeout    time.Duration
	ClassifyTimeout time.Duration

	// Extractor, when set, replaces a truncated article body with the full
	// page text in the classifier input only.
	Extractor news.ContentExtractor

	Metrics *Metrics
}

// Pipeline is safe for concurrent use; runs share no mutable state.
type Pipeline struct {
	source          ArticleSource
	classifier      Classifier
	extractor       news.ContentExtractor
	concurrency     int
	fetchTimeout    time.Duration
	classifyTimeout time.Duration
	metrics         *Metrics
}

// New creates a Pipeline.
func New(source ArticleSource, classifier Classifier, opts Options) *Pipeline {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		source:          source,
		classifier:      classifier,
		extractor:       opts.Extractor,
		concurrency:     concurrency,
		fetchTimeout:    opts.FetchTimeout,
		classifyTimeout: opts.ClassifyTimeout,
		metrics:         opts.Metrics,
	}
}

// Run fetches articles for topic, classifies the first articleLimit of them
// (all of them for AllArticles) and returns the relevant ones merged with
// their verdicts, in source order. The result is never nil.
//
// A fetch failure is returned wrapped, with no partial result; it matches
// news.ErrUpstreamUnavailable when the upstream was at fault.
func (p *Pipeline) Run(ctx context.Context, topic string, articleLimit int) ([]models.AnalyzedArticle, error) {
	if articleLimit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, articleLimit)
	}

	start := time.Now()
	logger := slog.With("run_id", uuid.NewString(), "topic", topic)

	articles, err := p.fetch(ctx, topic)
	if err != nil {
		p.metrics.observeRun(resultFetchFailed, time.Since(start).Seconds())
		logger.Error("failed to fetch articles", "error", err)
		return nil, fmt.Errorf("fetching articles for %q: %w", topic, err)
	}
	p.metrics.addFetched(len(articles))

	selected := articles
	if articleLimit != AllArticles && len(selected) > articleLimit {
		selected = selected[:articleLimit]
	}

	logger.Info("classifying articles",
		"fetched", len(articles),
		"selected", len(selected),
		"concurrency", p.concurrency,
	)

	// Index-tagged slots keep output in source order whatever the completion
	// order.
	verdicts := make([]*models.Verdict, len(selected))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, article := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if v, ok := p.classifyOne(ctx, logger, article, topic); ok {
				verdicts[i] = &v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.metrics.observeRun(resultCanceled, time.Since(start).Seconds())
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		p.metrics.observeRun(resultCanceled, time.Since(start).Seconds())
		return nil, err
	}

	results := make([]models.AnalyzedArticle, 0, len(selected))
	for i, v := range verdicts {
		if v == nil || !v.IsRelevant {
			continue
		}
		results = append(results, models.Merge(selected[i], *v))
	}

	p.metrics.observeRun(resultOK, time.Since(start).Seconds())
	logger.Info("pipeline finished",
		"classified", len(selected),
		"relevant", len(results),
		"duration", time.Since(start).String(),
	)
	return results, nil
}

func (p *Pipeline) fetch(ctx context.Context, topic string) ([]models.Article, error) {
	ctx, cancel := withTimeout(ctx, p.fetchTimeout)
	defer cancel()
	return p.source.Fetch(ctx, topic)
}

// classifyOne returns the verdict for article and whether one was obtained.
// Failures are logged and counted, never returned.
func (p *Pipeline) classifyOne(ctx context.Context, logger *slog.Logger, article models.Article, topic string) (models.Verdict, bool) {
	input := p.hydrate(ctx, logger, article)

	cctx, cancel := withTimeout(ctx, p.classifyTimeout)
	defer cancel()

	v, err := p.classifier.Classify(cctx, input, topic)
	switch {
	case errors.Is(err, classify.ErrMalformedClassification):
		p.metrics.countOutcome(outcomeMalformed)
		logger.Warn("dropping article with malformed classification", "url", article.URL, "error", err)
		return models.Verdict{}, false
	case err != nil:
		p.metrics.countOutcome(outcomeFailed)
		logger.Warn("dropping article after classification failure", "url", article.URL, "error", err)
		return models.Verdict{}, false
	case !v.IsRelevant:
		p.metrics.countOutcome(outcomeNotRelevant)
		logger.Debug("article not relevant", "url", article.URL)
	default:
		p.metrics.countOutcome(outcomeRelevant)
	}
	return v, true
}

// hydrate returns a copy of article whose content is the extracted page text
// when that is longer than what the source returned.
func (p *Pipeline) hydrate(ctx context.Context, logger *slog.Logger, article models.Article) models.Article {
	if p.extractor == nil || article.URL == "" {
		return article
	}
	text, err := p.extractor.Extract(ctx, article.URL)
	if err != nil {
		logger.Warn("failed to extract article text", "url", article.URL, "error", err)
		return article
	}
	if len(text) > len(article.ContentText()) {
		article.Content = &text
	}
	return article
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
