// Package classify decides whether a news article is relevant to a topic and
// extracts structured disaster metadata from it with one LLM call.
package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/hoanghai1803/disasterfeed/internal/ai"
	"github.com/hoanghai1803/disasterfeed/internal/models"
)

var (
	// ErrMalformedClassification is returned when the model answer is not a
	// JSON object of the verdict shape or violates a field rule.
	ErrMalformedClassification = errors.New("malformed classification")

	// ErrClassificationFailed is returned when the model could not be called.
	ErrClassificationFailed = errors.New("classification failed")
)

// Classifier turns one article and topic into a verdict. It makes at most
// one provider call per Classify and never retries.
type Classifier struct {
	provider ai.AIProvider
	limiter  *rate.Limiter
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRequestsPerMinute paces provider calls to at most n per minute. A
// non-positive n disables pacing.
func WithRequestsPerMinute(n int) Option {
	return func(c *Classifier) {
		if n <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// New creates a Classifier backed by provider.
func New(provider ai.AIProvider, opts ...Option) *Classifier {
	c := &Classifier{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify asks the model for a verdict on article. Errors wrap either
// ErrClassificationFailed or ErrMalformedClassification; both mean the
// article has no verdict.
func (c *Classifier) Classify(ctx context.Context, article models.Article, topic string) (models.Verdict, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return models.Verdict{}, fmt.Errorf("%w: waiting for rate limit: %w", ErrClassificationFailed, err)
		}
	}

	system, user := Prompt(article, topic)

	text, err := c.provider.Complete(ctx, system, user)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %w", ErrClassificationFailed, err)
	}

	v, err := ParseVerdict(text)
	if err != nil {
		slog.Debug("unparseable classification", "url", article.URL, "response", truncate(text, 200))
		return models.Verdict{}, err
	}
	return v, nil
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
