package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daytrip-labs/travel-cli/internal/report"
)

var (
	recommendRegion     string
	recommendJSON       bool
	recommendMaxReviews int
	recommendVisible    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Run the recommendation pipeline for a single region",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("recommend"); err != nil {
			return err
		}
		if recommendMaxReviews > 0 {
			cfg.Review.MaxReviews = recommendMaxReviews
		}
		if recommendVisible {
			cfg.Browser.Headless = false
		}

		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		rep, err := env.Pipeline.Run(cmd.Context(), recommendRegion)
		if err != nil {
			return eris.Wrap(err, "recommend run")
		}

		zap.L().Info("recommendation complete",
			zap.String("region", rep.Region),
			zap.String("run_id", rep.RunID),
			zap.Int("destinations", len(rep.Destinations)),
			zap.Int("reviews", rep.ReviewCount()),
		)

		if recommendJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		report.Render(cmd.OutOrStdout(), rep)
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendRegion, "region", "", "South Korean region to recommend destinations for (required)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the report as JSON instead of the terminal format")
	recommendCmd.Flags().IntVar(&recommendMaxReviews, "max-reviews", 0, "max reviews per destination (default from config)")
	recommendCmd.Flags().BoolVar(&recommendVisible, "visible", false, "show the browser window while crawling")
	_ = recommendCmd.MarkFlagRequired("region")
	rootCmd.AddCommand(recommendCmd)
}
