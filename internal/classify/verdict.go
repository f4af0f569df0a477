package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hoanghai1803/disasterfeed/internal/ai"
	"github.com/hoanghai1803/disasterfeed/internal/models"
)

// rawVerdict mirrors the model's answer before validation. Pointers tell
// missing fields apart from zero values.
type rawVerdict struct {
	IsRelevant      *bool                 `json:"is_relevant"`
	Location        *string               `json:"location"`
	DisasterType    *string               `json:"disaster_type"`
	Tags            []string              `json:"tags"`
	Severity        *int                  `json:"severity"`
	EstimatedDeaths *models.DeathEstimate `json:"estimated_deaths"`
}

// ParseVerdict decodes and validates a model answer. Any decoding or
// validation problem is returned as ErrMalformedClassification.
func ParseVerdict(text string) (models.Verdict, error) {
	cleaned := ai.ExtractJSON(text)
	if cleaned == "" {
		return models.Verdict{}, fmt.Errorf("%w: empty response", ErrMalformedClassification)
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %w", ErrMalformedClassification, err)
	}

	v, err := raw.validate()
	if err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %w", ErrMalformedClassification, err)
	}
	return v, nil
}

var errMissingRelevance = errors.New("is_relevant is missing or null")

// validate applies the field rules and returns the normalized verdict.
func (r rawVerdict) validate() (models.Verdict, error) {
	if r.IsRelevant == nil {
		return models.Verdict{}, errMissingRelevance
	}

	v := models.Verdict{
		IsRelevant:      *r.IsRelevant,
		Location:        trimmedOrNil(r.Location),
		DisasterType:    trimmedOrNil(r.DisasterType),
		Tags:            cleanTags(r.Tags),
		EstimatedDeaths: r.EstimatedDeaths,
	}
	if v.DisasterType != nil {
		lower := strings.ToLower(*v.DisasterType)
		v.DisasterType = &lower
	}
	if r.Severity != nil {
		s := clampSeverity(*r.Severity)
		v.Severity = &s
	}
	return v, nil
}

func clampSeverity(s int) int {
	return min(max(s, models.MinSeverity), models.MaxSeverity)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// cleanTags drops blank tags and keeps the model's order. It always returns
// a non-nil slice so the verdict encodes tags as [].
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
