package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/source"
)

var newsIgnoreSchedule bool

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Curate one ocean news headline",
	Long:  "Fetches keyword-filtered headlines and publishes the first one not already in the feed, deduplicating by source URL and title similarity. Keywords rotate by publish day.",
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := cfg.News.KeywordsFor(time.Now())
		if newsIgnoreSchedule && len(keywords) == 0 {
			keywords = cfg.News.WednesdayKeywords
		}
		if len(keywords) == 0 {
			zap.L().Info("not a scheduled news day, exiting")
			return nil
		}

		eng, store, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		feed := source.NewHeadlineFeed(buildHTTPSource(), cfg.News.FeedURL)
		entry, err := eng.CurateHeadlines(cmd.Context(), feed, keywords)
		return reportOutcome(entry, err)
	},
}

func init() {
	newsCmd.Flags().BoolVar(&newsIgnoreSchedule, "ignore-schedule", false, "run even on unscheduled days")
	rootCmd.AddCommand(newsCmd)
}
