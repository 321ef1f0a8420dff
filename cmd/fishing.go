package main

import (
	"github.com/spf13/cobra"

	"github.com/porkytheunique/ocean-insight/internal/engine"
	"github.com/porkytheunique/ocean-insight/internal/model"
)

var fishingCmd = &cobra.Command{
	Use:   "fishing",
	Short: "Run the fishing-activity analyzer",
	Long:  "Analyzes fishing events against protected-area polygons and publishes one insight: a notable proximity, a density hotspot, or the dominant economic zone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, store, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		entry, err := eng.RunGeo(cmd.Context(), engine.GeoJob{
			Name:          "fishing",
			QueryURL:      cfg.Fishing.EventsURL,
			IndexURL:      cfg.Fishing.ProtectedAreasURL,
			FocusProperty: cfg.Fishing.FocusProperty,
			QueryLabel: func(r model.FeatureRecord) string {
				return r.Prop("vessel_name", "a fishing vessel")
			},
			IndexLabel: func(r model.FeatureRecord) string {
				return r.Prop("NAME", "a protected area")
			},
		})
		return reportOutcome(entry, err)
	},
}

func init() { rootCmd.AddCommand(fishingCmd) }
