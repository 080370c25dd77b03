package analytics

import (
	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// retention_rate = users_active / cohort_size, rounded to 4 decimals and
// expressed as a 0-1 fraction. NULLIF keeps an empty cohort from faulting
// the division; the join direction already guarantees size >= 1, so a NULL
// rate marks inconsistent inputs rather than a real cohort.
var _7_cohortRetentionRatesQuery = `
SELECT
	cr.cohort_week,
	cr.cohort_index,
	cr.users_active,
	cs.cohort_size,
	ROUND(cr.users_active * 1.0 / NULLIF(cs.cohort_size, 0), 4) AS retention_rate
FROM cohort_retention cr
JOIN cohort_sizes cs
	ON cs.cohort_week = cr.cohort_week
ORDER BY cr.cohort_week, cr.cohort_index
`

func (ac *AnalyticsCalculator) GenerateAndInsertCohortRetentionRates() error {
	tableName := analyticsUtils.Table_7_CohortRetentionRate

	err := analyticsUtils.GenerateAndInsertFromQuery(ac.grm, tableName, _7_cohortRetentionRatesQuery, ac.logger)
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to generate cohort_retention_rates", "error", err)
		return err
	}
	return nil
}

func (ac *AnalyticsCalculator) ListCohortRetentionRates() ([]*CohortRetentionRate, error) {
	var rates []*CohortRetentionRate
	res := ac.grm.Table(analyticsUtils.Table_7_CohortRetentionRate).
		Order("cohort_week asc, cohort_index asc").
		Find(&rates)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list cohort retention rates", "error", res.Error)
		return nil, res.Error
	}
	return rates, nil
}
