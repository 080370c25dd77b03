package analytics

import (
	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// One row per (user_id, session_index) with independent stage-reached flags.
// The flags are not forced into a monotonic funnel: a session can carry
// has_purchase=1 with has_checkout=0 when the clickstream is incomplete, and
// that is kept as-is.
//
// "First non-null wins" attributes pick the first non-null value ordered by
// (ts, event_id), which makes the tie-break deterministic. If an attribute
// genuinely varies within a session, the earliest observed value is retained.
var _2_funnelSessionsQuery = `
WITH session_attrs AS (
	SELECT
		user_id,
		session_id,
		session_index,
		event_type,
		product_id,
		ts,
		FIRST_VALUE(source) OVER (
			PARTITION BY user_id, session_index
			ORDER BY (source IS NULL), ts, event_id
		) AS first_source,
		FIRST_VALUE(device) OVER (
			PARTITION BY user_id, session_index
			ORDER BY (device IS NULL), ts, event_id
		) AS first_device,
		FIRST_VALUE(ab_test_id) OVER (
			PARTITION BY user_id, session_index
			ORDER BY (ab_test_id IS NULL), ts, event_id
		) AS first_ab_test_id,
		FIRST_VALUE(variant) OVER (
			PARTITION BY user_id, session_index
			ORDER BY (variant IS NULL), ts, event_id
		) AS first_variant
	FROM user_sessions
)
SELECT
	user_id,
	session_id,
	session_index,
	MAX(CASE WHEN event_type = 'visit' THEN 1 ELSE 0 END) AS has_visit,
	MAX(CASE WHEN event_type = 'product_view' THEN 1 ELSE 0 END) AS has_product_view,
	MAX(CASE WHEN event_type = 'add_to_cart' THEN 1 ELSE 0 END) AS has_add_to_cart,
	MAX(CASE WHEN event_type = 'checkout' THEN 1 ELSE 0 END) AS has_checkout,
	MAX(CASE WHEN event_type = 'purchase' THEN 1 ELSE 0 END) AS has_purchase,
	SUM(CASE WHEN event_type = 'visit' THEN 1 ELSE 0 END) AS visit_count,
	SUM(CASE WHEN event_type = 'product_view' THEN 1 ELSE 0 END) AS product_view_count,
	SUM(CASE WHEN event_type = 'add_to_cart' THEN 1 ELSE 0 END) AS add_to_cart_count,
	SUM(CASE WHEN event_type = 'checkout' THEN 1 ELSE 0 END) AS checkout_count,
	SUM(CASE WHEN event_type = 'purchase' THEN 1 ELSE 0 END) AS purchase_count,
	MIN(ts) AS session_start_ts,
	MAX(ts) AS session_end_ts,
	(strftime('%s', MAX(ts)) - strftime('%s', MIN(ts))) / 60.0 AS duration_minutes,
	first_source AS source,
	first_device AS device,
	first_ab_test_id AS ab_test_id,
	first_variant AS variant,
	COUNT(DISTINCT CASE WHEN event_type = 'product_view' THEN product_id END) AS distinct_products_viewed
FROM session_attrs
GROUP BY user_id, session_index, session_id, first_source, first_device, first_ab_test_id, first_variant
`

func (ac *AnalyticsCalculator) GenerateAndInsertFunnelSessions() error {
	tableName := analyticsUtils.Table_2_FunnelSessions

	err := analyticsUtils.GenerateAndInsertFromQuery(ac.grm, tableName, _2_funnelSessionsQuery, ac.logger)
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to generate funnel_sessions", "error", err)
		return err
	}
	return nil
}

func (ac *AnalyticsCalculator) ListFunnelSessions() ([]*FunnelSession, error) {
	var funnelSessions []*FunnelSession
	res := ac.grm.Table(analyticsUtils.Table_2_FunnelSessions).
		Order("user_id asc, session_index asc").
		Find(&funnelSessions)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list funnel sessions", "error", res.Error)
		return nil, res.Error
	}
	return funnelSessions, nil
}
