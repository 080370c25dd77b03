package cmd

import (
	"github.com/trailhead-labs/funnelcast/internal/config"
	"github.com/trailhead-labs/funnelcast/internal/logger"
	"github.com/trailhead-labs/funnelcast/internal/metrics"
	"github.com/trailhead-labs/funnelcast/pkg/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupCommand wires the pieces every subcommand needs: config from viper,
// the zap logger, the metrics sink and the embedded database connection.
func setupCommand() (*config.Config, *zap.Logger, *metrics.MetricsSink, *gorm.DB) {
	cfg := config.NewConfig()

	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})

	sink, err := metrics.NewMetricsSinkFromConfig(cfg, l)
	if err != nil {
		l.Sugar().Fatalw("Failed to setup metrics sink", zap.Error(err))
	}

	grm, err := sqlite.NewGormSqliteFromSqlite(sqlite.NewSqlite(&sqlite.SqliteConfig{
		Path: cfg.DatabaseConfig.Path,
	}))
	if err != nil {
		l.Sugar().Fatalw("Failed to open analytics database",
			"path", cfg.DatabaseConfig.Path,
			zap.Error(err),
		)
	}

	return cfg, l, sink, grm
}
