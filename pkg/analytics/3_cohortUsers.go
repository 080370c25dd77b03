package analytics

import (
	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// Cohort membership comes from the signup date alone, never from purchase
// activity. cohort_week is the Monday on or before signup_date.
var _3_cohortUsersQuery = `
SELECT
	user_id,
	date(MIN(signup_date), '-6 days', 'weekday 1') AS cohort_week
FROM users_raw
GROUP BY user_id
`

func (ac *AnalyticsCalculator) GenerateAndInsertCohortUsers() error {
	tableName := analyticsUtils.Table_3_CohortUsers

	err := analyticsUtils.GenerateAndInsertFromQuery(ac.grm, tableName, _3_cohortUsersQuery, ac.logger)
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to generate cohort_users", "error", err)
		return err
	}
	return nil
}

func (ac *AnalyticsCalculator) ListCohortUsers() ([]*CohortUser, error) {
	var cohortUsers []*CohortUser
	res := ac.grm.Table(analyticsUtils.Table_3_CohortUsers).
		Order("user_id asc").
		Find(&cohortUsers)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list cohort users", "error", res.Error)
		return nil, res.Error
	}
	return cohortUsers, nil
}
