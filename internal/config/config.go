package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	AI       AIConfig       `toml:"ai"`
	Server   ServerConfig   `toml:"server"`
	News     NewsConfig     `toml:"news"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Social   SocialConfig   `toml:"social"`
	Log      LogConfig      `toml:"log"`
}

// AIConfig holds AI provider settings.
type AIConfig struct {
	Provider          string `toml:"provider"`
	APIKey            string `toml:"api_key"`
	Model             string `toml:"model"`
	MaxTokens         int    `toml:"max_tokens"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// NewsConfig holds article source settings.
type NewsConfig struct {
	Provider        string `toml:"provider"`
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	FeedURL         string `toml:"feed_url"`
	Language        string `toml:"language"`
	PageSize        int    `toml:"page_size"`
	ExtractFullText bool   `toml:"extract_full_text"`
}

// PipelineConfig holds classification pipeline settings.
type PipelineConfig struct {
	ArticleLimit           int `toml:"article_limit"`
	Concurrency            int `toml:"concurrency"`
	FetchTimeoutSeconds    int `toml:"fetch_timeout_seconds"`
	ClassifyTimeoutSeconds int `toml:"classify_timeout_seconds"`
}

// SocialConfig holds the social scraper service settings.
type SocialConfig struct {
	Endpoint       string `toml:"endpoint"`
	Mail           string `toml:"mail"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// FetchTimeout returns the article fetch timeout.
func (p PipelineConfig) FetchTimeout() time.Duration {
	return time.Duration(p.FetchTimeoutSeconds) * time.Second
}

// ClassifyTimeout returns the per-article classification timeout.
func (p PipelineConfig) ClassifyTimeout() time.Duration {
	return time.Duration(p.ClassifyTimeoutSeconds) * time.Second
}

// Timeout returns the scrape call timeout.
func (s SocialConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

const defaultConfigContent = `[ai]
provider = "gemini"               # "gemini", "anthropic" or "openai"
api_key = ""                      # Your API key (or set AI_API_KEY / GEMINI_API_KEY env var)
model = "gemini-1.5-flash"
requests_per_minute = 0           # 0 disables client-side pacing

[server]
host = "localhost"
port = 8080

[news]
provider = "newsapi"              # "newsapi" or "rss"
api_key = ""                      # NewsAPI key (or set NEWS_API_KEY env var)
language = "en"
extract_full_text = false         # fetch article pages before classifying

[pipeline]
article_limit = 1                 # articles classified per request; 0 means all fetched
concurrency = 1                   # parallel classification calls
fetch_timeout_seconds = 30
classify_timeout_seconds = 60

[social]
endpoint = ""                     # scraper service URL; empty disables /scrape_hashtag

[log]
level = "info"
format = "text"
`

var defaultModels = map[string]string{
	"gemini":    "gemini-1.5-flash",
	"anthropic": "claude-haiku-4-5",
	"openai":    "gpt-4o-mini",
}

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("pipeline", "concurrency") {
		if cfg.Pipeline.Concurrency < 1 {
			return fmt.Errorf("invalid pipeline.concurrency %d: must be >= 1", cfg.Pipeline.Concurrency)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
// pipeline.article_limit is the exception: an explicit 0 means "all fetched
// articles", so only a missing key gets the default.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = defaultModels[cfg.AI.Provider]
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.News.Provider == "" {
		cfg.News.Provider = "newsapi"
	}
	if cfg.News.Language == "" {
		cfg.News.Language = "en"
	}
	if !md.IsDefined("pipeline", "article_limit") {
		cfg.Pipeline.ArticleLimit = 1
	}
	if cfg.Pipeline.Concurrency == 0 {
		cfg.Pipeline.Concurrency = 1
	}
	if cfg.Pipeline.FetchTimeoutSeconds == 0 {
		cfg.Pipeline.FetchTimeoutSeconds = 30
	}
	if cfg.Pipeline.ClassifyTimeoutSeconds == 0 {
		cfg.Pipeline.ClassifyTimeoutSeconds = 60
	}
	if cfg.Social.TimeoutSeconds == 0 {
		cfg.Social.TimeoutSeconds = 300
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. GEMINI_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY matching ai.provider
func applyEnvOverrides(cfg *Config) {
	providerKeys := map[string]string{
		"gemini":    "GEMINI_API_KEY",
		"anthropic": "ANTHROPIC_API_KEY",
		"openai":    "OPENAI_API_KEY",
	}
	if name, ok := providerKeys[cfg.AI.Provider]; ok {
		setFromEnv(&cfg.AI.APIKey, name)
	}
	setFromEnv(&cfg.AI.APIKey, "AI_API_KEY")

	setFromEnv(&cfg.News.APIKey, "NEWS_API_KEY")

	setFromEnv(&cfg.Social.Endpoint, "SOCIAL_SCRAPER_URL")
	setFromEnv(&cfg.Social.Mail, "MAIL")
	setFromEnv(&cfg.Social.Username, "TWITTER_USERNAME")
	setFromEnv(&cfg.Social.Password, "TWITTER_PASSWORD")

	setFromEnv(&cfg.Log.Level, "LOG_LEVEL")
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if _, ok := defaultModels[cfg.AI.Provider]; !ok {
		return fmt.Errorf("invalid ai.provider %q: must be \"gemini\", \"anthropic\" or \"openai\"", cfg.AI.Provider)
	}
	if cfg.AI.RequestsPerMinute < 0 {
		return fmt.Errorf("invalid ai.requests_per_minute %d: must be >= 0", cfg.AI.RequestsPerMinute)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch cfg.News.Provider {
	case "newsapi":
		if cfg.News.APIKey == "" {
			slog.Warn("news.api_key is empty: set it in the config file or via NEWS_API_KEY environment variable")
		}
	case "rss":
		if cfg.News.FeedURL != "" && !strings.Contains(cfg.News.FeedURL, "{query}") {
			return fmt.Errorf("invalid news.feed_url %q: must contain {query}", cfg.News.FeedURL)
		}
	default:
		return fmt.Errorf("invalid news.provider %q: must be \"newsapi\" or \"rss\"", cfg.News.Provider)
	}
	if cfg.News.PageSize < 0 {
		return fmt.Errorf("invalid news.page_size %d: must be >= 0", cfg.News.PageSize)
	}

	if cfg.Pipeline.ArticleLimit < 0 {
		return fmt.Errorf("invalid pipeline.article_limit %d: must be >= 0", cfg.Pipeline.ArticleLimit)
	}
	if cfg.Pipeline.Concurrency < 1 {
		return fmt.Errorf("invalid pipeline.concurrency %d: must be >= 1", cfg.Pipeline.Concurrency)
	}
	if cfg.Pipeline.FetchTimeoutSeconds < 0 || cfg.Pipeline.ClassifyTimeoutSeconds < 0 {
		return fmt.Errorf("invalid pipeline timeouts: must be >= 0")
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be \"text\" or \"json\"", cfg.Log.Format)
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("ai.api_key is empty: set it in the config file or via AI_API_KEY environment variable")
	}

	return nil
}
