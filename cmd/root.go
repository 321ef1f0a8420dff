package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ocean-insight",
	Short: "Ocean activity insight feed",
	Long:  "Selects one notable fact from ocean activity datasets, renders it into a short narrative, and appends it to the published feed with deduplication.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
