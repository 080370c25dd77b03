package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trailhead-labs/funnelcast/internal/logger"
	"github.com/trailhead-labs/funnelcast/internal/metrics"
	"github.com/trailhead-labs/funnelcast/internal/tests"
	"github.com/trailhead-labs/funnelcast/internal/tests/sqlite"
	"github.com/trailhead-labs/funnelcast/pkg/analytics"
	"github.com/trailhead-labs/funnelcast/pkg/storage"
)

func Test_Exporter(t *testing.T) {
	cfg := tests.GetConfig()
	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})

	dbFileName, grm, err := sqlite.GetFileBasedSqliteDatabaseConnection(l)
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.DeleteTestSqliteDB(dbFileName)

	if _, err := storage.NewRawTableStore(grm, l); err != nil {
		t.Fatal(err)
	}
	for _, fixture := range []string{tests.UsersFixtureSql, tests.EventsFixtureSql, tests.OrdersFixtureSql} {
		if err := tests.HydrateSql(grm, l, fixture); err != nil {
			t.Fatal(err)
		}
	}

	sink, _ := metrics.NewMetricsSink(&metrics.MetricsSinkConfig{}, nil)
	calculator := analytics.NewAnalyticsCalculator(l, grm, cfg, sink)
	if err := calculator.GenerateAnalyticsTables(); err != nil {
		t.Fatal(err)
	}

	exporter := NewExporter(calculator, sink, l)
	outputDir := filepath.Join(t.TempDir(), "exports")

	t.Run("Should export all three view files", func(t *testing.T) {
		err := exporter.ExportAll(outputDir)
		assert.Nil(t, err)

		for _, fileName := range []string{FunnelMetricsFileName, CohortRetentionFileName, AbTestSummaryFileName} {
			_, err := os.Stat(filepath.Join(outputDir, fileName))
			assert.Nil(t, err, fileName)
		}
	})

	t.Run("Retention export keeps rates as 0-1 fractions", func(t *testing.T) {
		contents, err := os.ReadFile(filepath.Join(outputDir, CohortRetentionFileName))
		assert.Nil(t, err)

		lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
		assert.Equal(t, "cohort_week,cohort_index,users_active,cohort_size,retention_rate", lines[0])
		// header + the two retention rows from the fixture.
		assert.Equal(t, 3, len(lines))
		assert.Contains(t, lines[1], "0.6667")
		assert.Contains(t, lines[2], "0.3333")
	})

	t.Run("Null ratios export as empty cells", func(t *testing.T) {
		contents, err := os.ReadFile(filepath.Join(outputDir, AbTestSummaryFileName))
		assert.Nil(t, err)

		lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
		// The treatment variant purchased without a checkout, so its
		// checkout_to_purchase_rate is null.
		var treatmentLine string
		for _, line := range lines {
			if strings.Contains(line, "treatment") {
				treatmentLine = line
			}
		}
		assert.NotEmpty(t, treatmentLine)
		assert.True(t, strings.HasSuffix(treatmentLine, ","))
	})
}
