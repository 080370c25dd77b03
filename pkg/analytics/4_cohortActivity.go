package analytics

import (
	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// One row per (user, week) with at least one successful purchase that week,
// no matter how many orders the user placed. Failed and refunded payments do
// not count as activity.
var _4_cohortActivityQuery = `
SELECT DISTINCT
	user_id,
	date(ts, '-6 days', 'weekday 1') AS activity_week
FROM orders_raw
WHERE payment_status = 'success'
`

func (ac *AnalyticsCalculator) GenerateAndInsertCohortActivity() error {
	tableName := analyticsUtils.Table_4_CohortActivity

	err := analyticsUtils.GenerateAndInsertFromQuery(ac.grm, tableName, _4_cohortActivityQuery, ac.logger)
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to generate cohort_activity", "error", err)
		return err
	}
	return nil
}

func (ac *AnalyticsCalculator) ListCohortActivity() ([]*CohortActivity, error) {
	var cohortActivity []*CohortActivity
	res := ac.grm.Table(analyticsUtils.Table_4_CohortActivity).
		Order("user_id asc, activity_week asc").
		Find(&cohortActivity)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list cohort activity", "error", res.Error)
		return nil, res.Error
	}
	return cohortActivity, nil
}
