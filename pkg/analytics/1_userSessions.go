package analytics

import (
	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// Sessionization of the raw clickstream. Events are partitioned by user and
// ordered by (ts, event_id); a new session starts on a user's first event or
// when the gap to the previous event is strictly greater than the configured
// inactivity threshold. A gap of exactly the threshold continues the session.
//
// The final session_id is re-derived as user_id + hour of the session's first
// event + session_index, so it is reproducible from the input alone and two
// users reusing the same upstream session_id can never collide.
var _1_userSessionsQuery = `
WITH events_with_fallback AS (
	SELECT
		event_id,
		user_id,
		-- Anonymous events fall back to a (user, hour) bucket so same-hour
		-- events without an upstream session_id co-locate.
		COALESCE(session_id, user_id || '-' || strftime('%Y%m%d%H', ts)) AS raw_session_id,
		event_type,
		page,
		product_id,
		product_category,
		ts,
		source,
		device,
		ab_test_id,
		variant
	FROM events_raw
),
events_with_gap AS (
	SELECT
		*,
		-- Integer epoch seconds keep the gap exact, so the threshold
		-- comparison is not at the mercy of float rounding.
		(strftime('%s', ts) - strftime('%s',
			LAG(ts) OVER (PARTITION BY user_id ORDER BY ts, event_id)
		)) / 60.0 AS gap_minutes
	FROM events_with_fallback
),
events_flagged AS (
	SELECT
		*,
		CASE
			WHEN gap_minutes IS NULL THEN 1
			WHEN gap_minutes > {{.inactivityMinutes}} THEN 1
			ELSE 0
		END AS is_new_session
	FROM events_with_gap
),
events_numbered AS (
	SELECT
		*,
		SUM(is_new_session) OVER (
			PARTITION BY user_id
			ORDER BY ts, event_id
			ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
		) AS session_index
	FROM events_flagged
),
session_starts AS (
	SELECT
		user_id,
		session_index,
		MIN(ts) AS session_start_ts
	FROM events_numbered
	GROUP BY user_id, session_index
)
SELECT
	en.event_id,
	en.user_id,
	en.raw_session_id,
	en.event_type,
	en.page,
	en.product_id,
	en.product_category,
	en.ts,
	en.source,
	en.device,
	en.ab_test_id,
	en.variant,
	en.gap_minutes,
	en.is_new_session,
	en.session_index,
	en.user_id || '-' || strftime('%Y%m%d%H', ss.session_start_ts) || '-' || en.session_index AS session_id
FROM events_numbered en
JOIN session_starts ss
	ON ss.user_id = en.user_id
	AND ss.session_index = en.session_index
`

func (ac *AnalyticsCalculator) GenerateAndInsertUserSessions() error {
	tableName := analyticsUtils.Table_1_UserSessions

	query, err := analyticsUtils.RenderQueryTemplate(_1_userSessionsQuery, map[string]interface{}{
		"inactivityMinutes": ac.globalConfig.SessionConfig.InactivityMinutes,
	})
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to render user sessions query", "error", err)
		return err
	}

	err = analyticsUtils.GenerateAndInsertFromQuery(ac.grm, tableName, query, ac.logger)
	if err != nil {
		ac.logger.Sugar().Errorw("Failed to generate user_sessions", "error", err)
		return err
	}
	return nil
}

func (ac *AnalyticsCalculator) ListUserSessions() ([]*UserSession, error) {
	var userSessions []*UserSession
	res := ac.grm.Table(analyticsUtils.Table_1_UserSessions).
		Order("user_id asc, ts asc, event_id asc").
		Find(&userSessions)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list user sessions", "error", res.Error)
		return nil, res.Error
	}
	return userSessions, nil
}
