package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var newsCmd = &cobra.Command{
	Use:   "news <keyword>",
	Short: "Fetch and classify news for a keyword",
	Long: `Fetch news articles for a keyword, classify them and print the relevant
ones as JSON.

Examples:
  disasterfeed news earthquake           # Use pipeline.article_limit
  disasterfeed news flood --limit 0      # Classify every fetched article`,
	Args: cobra.ExactArgs(1),
	RunE: runNews,
}

func init() {
	rootCmd.AddCommand(newsCmd)

	newsCmd.Flags().Int("limit", -1, "articles to classify (0 means all, default from config)")
}

func runNews(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if !cmd.Flags().Changed("limit") {
		limit = cfg.Pipeline.ArticleLimit
	}

	provider, cleanup, err := buildProvider(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := buildPipeline(cfg, provider, nil)
	if err != nil {
		return err
	}

	articles, err := p.Run(cmd.Context(), args[0], limit)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}
