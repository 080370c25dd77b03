package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/trailhead-labs/funnelcast/internal/metrics/metricsTypes"
	"github.com/trailhead-labs/funnelcast/pkg/storage"
	"go.uber.org/zap"
)

var loadDataCmd = &cobra.Command{
	Use:   "load-data",
	Short: "Load the raw users, events and orders CSV exports into the analytics database",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, l, sink, grm := setupCommand()

		store, err := storage.NewRawTableStore(grm, l)
		if err != nil {
			l.Sugar().Fatalw("Failed to initialize raw tables", zap.Error(err))
		}

		start := time.Now()
		loader := storage.NewCsvLoader(store)
		if err := loader.LoadAll(cfg.DataConfig.Dir); err != nil {
			l.Sugar().Fatalw("Failed to load raw data",
				"dataDir", cfg.DataConfig.Dir,
				zap.Error(err),
			)
		}
		_ = sink.Timing(metricsTypes.Metric_Timing_LoadDuration, time.Since(start), nil)

		l.Sugar().Infow("Raw data loaded",
			"dataDir", cfg.DataConfig.Dir,
			"database", cfg.DatabaseConfig.Path,
		)
	},
}
