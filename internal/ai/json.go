package ai

import "strings"

// ExtractJSON strips markdown code fences and surrounding prose from a model
// answer that is supposed to hold a single JSON object. It returns the text
// between the first '{' and the last '}' when the fenced content is not
// already an object. Input without braces is returned trimmed.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Try ```json ... ``` first.
	if after, found := strings.CutPrefix(s, "```json"); found {
		s = trimFence(after)
	} else if after, found := strings.CutPrefix(s, "```"); found {
		s = trimFence(after)
	}

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func trimFence(s string) string {
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
