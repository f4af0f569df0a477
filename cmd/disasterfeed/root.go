package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hoanghai1803/disasterfeed/internal/config"
	"github.com/hoanghai1803/disasterfeed/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "disasterfeed",
	Short: "Disaster news classification service",
	Long: `disasterfeed fetches news articles for a keyword, asks an LLM whether each
one reports a natural disaster, and returns the relevant ones enriched with
location, type, severity and casualty estimates.

Example usage:
  disasterfeed serve                  # Start the HTTP API
  disasterfeed news earthquake        # Classify news for one keyword
  disasterfeed scrape flood --max 20  # Relay posts for a hashtag`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "path to config file")
}

// initConfig loads the config file (creating a default one if missing) and
// installs the configured logger as the slog default.
func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format))
	return nil
}
