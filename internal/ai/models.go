package ai

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider  string // "gemini" | "anthropic" | "openai"
	APIKey    string
	Model     string
	MaxTokens int
}

// defaultMaxTokens caps completion length when the config leaves it unset.
// A verdict object is small.
const defaultMaxTokens = 1024
