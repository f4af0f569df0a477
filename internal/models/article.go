package models

import (
	"encoding/json"
	"time"
)

// ArticleSource identifies the publisher of an article.
type ArticleSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// Article is a raw news article as returned by an article source. Field names
// follow the NewsAPI wire format; fields NewsAPI may send as null are
// pointers so null survives the round trip.
type Article struct {
	Source      ArticleSource `json:"source"`
	Author      *string       `json:"author"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	URL         string        `json:"url"`
	URLToImage  *string       `json:"urlToImage"`
	PublishedAt *time.Time    `json:"publishedAt"`
	Content     *string       `json:"content"`
}

// DescriptionText returns the description, or "" when it is null.
func (a Article) DescriptionText() string {
	return deref(a.Description)
}

// ContentText returns the body, or "" when it is null.
func (a Article) ContentText() string {
	return deref(a.Content)
}

// StringPtr returns nil for an empty string and &s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// AnalyzedArticle is an article enriched with its classification verdict.
// Both halves are embedded so they encode as one flat JSON object.
type AnalyzedArticle struct {
	Article
	Verdict
}

// PostRecord is an opaque social-media post. It is passed through untouched.
type PostRecord = json.RawMessage
