package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Severity bounds.
const (
	MinSeverity = 1
	MaxSeverity = 10
)

// Verdict is the structured classification result for one article.
// Only IsRelevant gates inclusion; the other fields are advisory.
type Verdict struct {
	IsRelevant      bool           `json:"is_relevant"`
	Location        *string        `json:"location"`
	DisasterType    *string        `json:"disaster_type"`
	Tags            []string       `json:"tags"`
	Severity        *int           `json:"severity"`
	EstimatedDeaths *DeathEstimate `json:"estimated_deaths"`
}

// DeathEstimate is either a known count or explicitly "unknown". A nil
// *DeathEstimate means the model did not say.
type DeathEstimate struct {
	Count   int
	Unknown bool
}

// UnknownDeaths is the estimate used when the article does not mention deaths.
func UnknownDeaths() *DeathEstimate {
	return &DeathEstimate{Unknown: true}
}

// KnownDeaths returns an estimate with the given count.
func KnownDeaths(n int) *DeathEstimate {
	return &DeathEstimate{Count: n}
}

// MarshalJSON encodes the estimate as an integer or the string "unknown".
func (d DeathEstimate) MarshalJSON() ([]byte, error) {
	if d.Unknown {
		return []byte(`"unknown"`), nil
	}
	return []byte(strconv.Itoa(d.Count)), nil
}

// UnmarshalJSON accepts a non-negative integer or the string "unknown"
// (case-insensitive). JSON null is handled by the enclosing pointer.
func (d *DeathEstimate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(s), "unknown") {
			return fmt.Errorf("estimated_deaths: unexpected string %q", s)
		}
		*d = DeathEstimate{Unknown: true}
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("estimated_deaths: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("estimated_deaths: negative count %d", n)
	}
	*d = DeathEstimate{Count: n}
	return nil
}

// Merge combines an article with its verdict.
func Merge(a Article, v Verdict) AnalyzedArticle {
	return AnalyzedArticle{Article: a, Verdict: v}
}
