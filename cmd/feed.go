package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var feedLimit int

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Print the published feed, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		entries, _, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("feed is empty")
			return nil
		}

		n := len(entries)
		if feedLimit > 0 && feedLimit < n {
			n = feedLimit
		}
		for _, e := range entries[:n] {
			id := e.UniqueID
			if id == "" {
				id = e.SourceURL
			}
			fmt.Printf("%s  [%s]  %s\n    %s\n", e.Date, e.Tag, id, e.Content)
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedLimit, "limit", 0, "show at most this many entries")
	rootCmd.AddCommand(feedCmd)
}
