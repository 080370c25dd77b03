package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trailhead-labs/funnelcast/pkg/analytics"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Materialize the analytics tables and reporting views from the raw data",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, l, sink, grm := setupCommand()

		calculator := analytics.NewAnalyticsCalculator(l, grm, cfg, sink)

		if err := calculator.GenerateAnalyticsTables(); err != nil {
			l.Sugar().Fatalw("Analytics run failed", zap.Error(err))
		}

		l.Sugar().Infow("Analytics run complete", "database", cfg.DatabaseConfig.Path)
	},
}
