package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trailhead-labs/funnelcast/pkg/analytics"
	"github.com/trailhead-labs/funnelcast/pkg/export"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the reporting views to BI-ready CSV files",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, l, sink, grm := setupCommand()

		calculator := analytics.NewAnalyticsCalculator(l, grm, cfg, sink)
		exporter := export.NewExporter(calculator, sink, l)

		if err := exporter.ExportAll(cfg.ExportConfig.OutputDir); err != nil {
			l.Sugar().Fatalw("Export failed",
				"outputDir", cfg.ExportConfig.OutputDir,
				zap.Error(err),
			)
		}

		l.Sugar().Infow("Export complete", "outputDir", cfg.ExportConfig.OutputDir)
	},
}
