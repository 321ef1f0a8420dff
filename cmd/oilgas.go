package main

import (
	"github.com/spf13/cobra"

	"github.com/porkytheunique/ocean-insight/internal/engine"
	"github.com/porkytheunique/ocean-insight/internal/model"
)

var oilgasCmd = &cobra.Command{
	Use:   "oilgas",
	Short: "Run the platform proximity analyzer",
	Long:  "Finds an oil or gas platform notably close to a coral reef. Only proximities under the configured threshold count as a story; draws are bounded, so a run can legitimately end with no result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, store, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		entry, err := eng.RunGeo(cmd.Context(), engine.GeoJob{
			Name:        "platform",
			QueryURL:    cfg.OilGas.PlatformsURL,
			IndexURL:    cfg.OilGas.CoralURL,
			ThresholdKM: cfg.OilGas.ThresholdKM,
			QueryLabel: func(r model.FeatureRecord) string {
				return r.Prop("Unit Name", "Unnamed Platform")
			},
			IndexLabel: func(r model.FeatureRecord) string {
				return r.Prop("ECOREGION", "a sensitive marine area")
			},
		})
		return reportOutcome(entry, err)
	},
}

func init() { rootCmd.AddCommand(oilgasCmd) }
