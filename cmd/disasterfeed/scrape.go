package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/hoanghai1803/disasterfeed/internal/social"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <hashtag>",
	Short: "Relay social posts for a hashtag",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().Int("max", social.DefaultMaxPosts, "maximum number of posts")
}

func runScrape(cmd *cobra.Command, args []string) error {
	maxCount, _ := cmd.Flags().GetInt("max")
	if maxCount <= 0 {
		maxCount = social.DefaultMaxPosts
	}

	scraper := buildScraper(cfg)
	if scraper == nil {
		return errors.New("social.endpoint is not configured")
	}

	posts, err := scraper.Scrape(cmd.Context(), args[0], maxCount)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(posts)
}
