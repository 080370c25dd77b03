package analytics

import (
	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// Distinct active users per (cohort_week, cohort_index). cohort_index is the
// whole-week offset between the cohort week and the activity week. Activity
// recorded before the user's signup week is a data anomaly and is excluded
// here rather than erroring; index 0 is the cohort's own signup week.
var _5_cohortRetentionQuery = `
SELECT
	cu.cohort_week,
	CAST((julianday(ca.activity_week) - julianday(cu.cohort_week)) / 7 AS INTEGER) AS cohort_index,
	COUNT(DISTINCT ca.user_id) AS users_active
FROM cohort_activity ca
JOIN cohort_users cu
	ON cu.user_id = ca.user_id
WHERE julianday(ca.activity_week) >= julianday(cu.cohort_week)
GROUP BY cu.cohort_week, cohort_index
`

func (ac *AnalyticsCalculator) GenerateAndInsertCohortRetention() error {
	tableName := analyticsUtils.Table_5_CohortRetention

	err := analyticsUtils.GenerateAndInsertFromQuery(ac.grm, tableName, _5_cohortRetentionQuery, ac.logger)
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to generate cohort_retention", "error", err)
		return err
	}
	return nil
}

func (ac *AnalyticsCalculator) ListCohortRetention() ([]*CohortRetention, error) {
	var cohortRetention []*CohortRetention
	res := ac.grm.Table(analyticsUtils.Table_5_CohortRetention).
		Order("cohort_week asc, cohort_index asc").
		Find(&cohortRetention)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list cohort retention", "error", res.Error)
		return nil, res.Error
	}
	return cohortRetention, nil
}
