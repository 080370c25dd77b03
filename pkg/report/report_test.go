package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trailhead-labs/funnelcast/pkg/analytics"
)

func floatPtr(f float64) *float64 {
	return &f
}

func Test_RenderRetentionMatrix(t *testing.T) {
	reporter := NewReporter(false)

	rows := []*analytics.CohortRetentionViewRow{
		{CohortWeek: "2024-01-01", CohortIndex: 0, UsersActive: 2, CohortSize: 3, RetentionRate: floatPtr(0.6667)},
		{CohortWeek: "2024-01-01", CohortIndex: 1, UsersActive: 1, CohortSize: 3, RetentionRate: floatPtr(0.3333)},
		{CohortWeek: "2024-01-08", CohortIndex: 0, UsersActive: 1, CohortSize: 4, RetentionRate: floatPtr(0.25)},
	}

	rendered := reporter.RenderRetentionMatrix(rows)

	assert.Contains(t, rendered, "2024-01-01")
	assert.Contains(t, rendered, "2024-01-08")
	assert.Contains(t, rendered, "66.67%")
	assert.Contains(t, rendered, "33.33%")
	assert.Contains(t, rendered, "25.00%")

	// The second cohort has no W1 cell: its row ends blank rather than 0%.
	lines := strings.Split(rendered, "\n")
	var secondCohortLine string
	for _, line := range lines {
		if strings.Contains(line, "2024-01-08") {
			secondCohortLine = line
		}
	}
	assert.NotEmpty(t, secondCohortLine)
	assert.NotContains(t, secondCohortLine, "0.00%")
}

func Test_RenderFunnelSummary(t *testing.T) {
	reporter := NewReporter(false)

	source := "google"
	device := "mobile"
	rows := []*analytics.FunnelMetricsRow{
		{
			Source:              &source,
			Device:              &device,
			Day:                 "2024-01-01",
			VisitSessions:       10,
			ProductViewSessions: 5,
			PurchaseSessions:    1,
			VisitToPurchaseRate: floatPtr(0.1),
		},
		{
			Day: "2024-01-02",
			// no visits that day: the ratio is null and renders as "-".
		},
	}

	rendered := reporter.RenderFunnelSummary(rows)

	assert.Contains(t, rendered, "google")
	assert.Contains(t, rendered, "10.00%")
	assert.Contains(t, rendered, "-")
}
