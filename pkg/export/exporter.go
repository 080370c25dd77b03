package export

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/trailhead-labs/funnelcast/internal/metrics"
	"github.com/trailhead-labs/funnelcast/internal/metrics/metricsTypes"
	"github.com/trailhead-labs/funnelcast/pkg/analytics"
	"go.uber.org/zap"
)

const (
	FunnelMetricsFileName   = "funnel_metrics.csv"
	CohortRetentionFileName = "cohort_retention.csv"
	AbTestSummaryFileName   = "ab_test_summary.csv"
)

// Exporter writes the BI-ready reporting views out as CSV files. Ratio
// columns stay 0-1 fractions; a NULL ratio becomes an empty cell.
type Exporter struct {
	logger      *zap.Logger
	calculator  *analytics.AnalyticsCalculator
	metricsSink *metrics.MetricsSink
}

func NewExporter(ac *analytics.AnalyticsCalculator, sink *metrics.MetricsSink, l *zap.Logger) *Exporter {
	return &Exporter{
		logger:      l,
		calculator:  ac,
		metricsSink: sink,
	}
}

func writeCsvFile[T any](outputDir string, fileName string, rows []*T) error {
	path := filepath.Join(outputDir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create csv file '%s'", path)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return errors.Wrapf(err, "failed to write csv file '%s'", path)
	}
	return nil
}

func (e *Exporter) ExportAll(outputDir string) error {
	start := time.Now()

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "failed to create output directory '%s'", outputDir)
	}

	if err := e.ExportFunnelMetrics(outputDir); err != nil {
		return err
	}
	if err := e.ExportCohortRetention(outputDir); err != nil {
		return err
	}
	if err := e.ExportAbTestSummary(outputDir); err != nil {
		return err
	}

	_ = e.metricsSink.Timing(metricsTypes.Metric_Timing_ExportDuration, time.Since(start), nil)
	return nil
}

func (e *Exporter) ExportFunnelMetrics(outputDir string) error {
	rows, err := e.calculator.ListFunnelMetrics()
	if err != nil {
		return err
	}
	if err := writeCsvFile(outputDir, FunnelMetricsFileName, rows); err != nil {
		e.logger.Sugar().Errorw("Failed to export funnel metrics", "error", err)
		return err
	}
	e.logger.Sugar().Infow("Exported funnel metrics", "file", FunnelMetricsFileName, "rows", len(rows))
	return nil
}

func (e *Exporter) ExportCohortRetention(outputDir string) error {
	rows, err := e.calculator.ListCohortRetentionView()
	if err != nil {
		return err
	}

	invalid := 0
	for _, row := range rows {
		if row.RetentionRate != nil && *row.RetentionRate > 1.0 {
			invalid++
		}
	}
	if invalid > 0 {
		e.logger.Sugar().Warnw("Exporting retention rates above 100%", "rows", invalid)
	}

	if err := writeCsvFile(outputDir, CohortRetentionFileName, rows); err != nil {
		e.logger.Sugar().Errorw("Failed to export cohort retention", "error", err)
		return err
	}
	e.logger.Sugar().Infow("Exported cohort retention", "file", CohortRetentionFileName, "rows", len(rows))
	return nil
}

func (e *Exporter) ExportAbTestSummary(outputDir string) error {
	rows, err := e.calculator.ListAbTestSummary()
	if err != nil {
		return err
	}
	if err := writeCsvFile(outputDir, AbTestSummaryFileName, rows); err != nil {
		e.logger.Sugar().Errorw("Failed to export ab test summary", "error", err)
		return err
	}
	e.logger.Sugar().Infow("Exported ab test summary", "file", AbTestSummaryFileName, "rows", len(rows))
	return nil
}
