package classify

import (
	"fmt"
	"strings"

	"github.com/hoanghai1803/disasterfeed/internal/models"
)

const systemPrompt = `You are a news analyst who screens articles for coverage of natural and man-made disasters. You answer with a single JSON object and nothing else: no prose, no markdown, no code fences.

The object has exactly these fields:
- "is_relevant": true if the article is relevant to the topic, false otherwise
- "location": the specific location mentioned in the article, as a string
- "disaster_type": the type of disaster (e.g. "flood", "earthquake", "hurricane"), as a string
- "tags": an array of short strings useful for searching and filtering
- "severity": an integer from 1 to 10, where 10 is most severe
- "estimated_deaths": an integer estimate of the number of deaths, or the string "unknown" if not mentioned

If the article is not relevant or does not contain a piece of information, set that field to null. Never omit a field.`

// Prompt builds the system and user prompts for classifying one article
// against topic.
func Prompt(article models.Article, topic string) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following news article about %q:\n", topic)
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	fmt.Fprintf(&b, "Description: %s\n", article.DescriptionText())
	fmt.Fprintf(&b, "Content: %s\n\n", article.ContentText())
	b.WriteString("Respond with only the JSON object.")
	return systemPrompt, b.String()
}
