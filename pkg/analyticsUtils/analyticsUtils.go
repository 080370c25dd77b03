package analyticsUtils

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/trailhead-labs/funnelcast/pkg/sqlite/helpers"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	Table_1_UserSessions        = "user_sessions"
	Table_2_FunnelSessions      = "funnel_sessions"
	Table_3_CohortUsers         = "cohort_users"
	Table_4_CohortActivity      = "cohort_activity"
	Table_5_CohortRetention     = "cohort_retention"
	Table_6_CohortSizes         = "cohort_sizes"
	Table_7_CohortRetentionRate = "cohort_retention_rates"

	View_FunnelMetrics   = "v_funnel_metrics"
	View_CohortRetention = "v_cohort_retention"
	View_AbTestSummary   = "v_ab_test_summary"
	View_AbTestSessions  = "v_ab_test_sessions"
)

func RenderQueryTemplate(query string, variables map[string]interface{}) (string, error) {
	queryTmpl := template.Must(template.New("").Parse(query))

	var dest bytes.Buffer
	if err := queryTmpl.Execute(&dest, variables); err != nil {
		return "", err
	}
	return dest.String(), nil
}

// GenerateAndInsertFromQuery materializes the result of query as tableName.
// The select runs into a temp table first and the swap happens inside one
// transaction, so the previous table stays visible until the new one is
// complete and a failed stage leaves it untouched.
func GenerateAndInsertFromQuery(
	grm *gorm.DB,
	tableName string,
	query string,
	l *zap.Logger,
) error {
	tmpTableName := fmt.Sprintf("%s_tmp", tableName)

	queryWithInsert := fmt.Sprintf("CREATE TABLE %s AS %s", tmpTableName, query)

	_, err := helpers.WrapTxAndCommit(func(tx *gorm.DB) (interface{}, error) {
		queries := []string{
			fmt.Sprintf(`drop table if exists %s`, tmpTableName),
			queryWithInsert,
			fmt.Sprintf(`drop table if exists %s`, tableName),
			fmt.Sprintf(`alter table %s rename to %s`, tmpTableName, tableName),
		}
		for _, query := range queries {
			res := tx.Exec(query)
			if res.Error != nil {
				l.Sugar().Errorw("Failed to execute query", "query", query, "error", res.Error)
				return nil, res.Error
			}
		}
		return nil, nil
	}, grm, nil)

	return err
}
