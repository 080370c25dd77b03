package analytics

import (
	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// Cohort sizes come from cohort_users, the unconditioned signup population.
// Sizing from any subset of orders instead would let retention exceed 100%.
var _6_cohortSizesQuery = `
SELECT
	cohort_week,
	COUNT(*) AS cohort_size
FROM cohort_users
GROUP BY cohort_week
`

func (ac *AnalyticsCalculator) GenerateAndInsertCohortSizes() error {
	tableName := analyticsUtils.Table_6_CohortSizes

	err := analyticsUtils.GenerateAndInsertFromQuery(ac.grm, tableName, _6_cohortSizesQuery, ac.logger)
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to generate cohort_sizes", "error", err)
		return err
	}
	return nil
}

func (ac *AnalyticsCalculator) ListCohortSizes() ([]*CohortSize, error) {
	var cohortSizes []*CohortSize
	res := ac.grm.Table(analyticsUtils.Table_6_CohortSizes).
		Order("cohort_week asc").
		Find(&cohortSizes)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list cohort sizes", "error", res.Error)
		return nil, res.Error
	}
	return cohortSizes, nil
}
