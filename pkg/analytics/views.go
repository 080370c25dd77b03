package analytics

import (
	"fmt"

	"github.com/trailhead-labs/funnelcast/pkg/analyticsUtils"
)

// Read-side views over the materialized tables. Views resolve their source
// tables by name at query time, so re-materializing a table never requires
// recreating the views; they are still replaced on every run to pick up
// definition changes.

var _funnelMetricsViewQuery = `
CREATE VIEW v_funnel_metrics AS
SELECT
	source,
	device,
	date(session_start_ts) AS day,
	SUM(has_visit) AS visit_sessions,
	SUM(has_product_view) AS product_view_sessions,
	SUM(has_add_to_cart) AS add_to_cart_sessions,
	SUM(has_checkout) AS checkout_sessions,
	SUM(has_purchase) AS purchase_sessions,
	ROUND(SUM(has_product_view) * 1.0 / NULLIF(SUM(has_visit), 0), 4) AS visit_to_view_rate,
	ROUND(SUM(has_add_to_cart) * 1.0 / NULLIF(SUM(has_product_view), 0), 4) AS view_to_cart_rate,
	ROUND(SUM(has_checkout) * 1.0 / NULLIF(SUM(has_add_to_cart), 0), 4) AS cart_to_checkout_rate,
	ROUND(SUM(has_purchase) * 1.0 / NULLIF(SUM(has_checkout), 0), 4) AS checkout_to_purchase_rate,
	ROUND(SUM(has_purchase) * 1.0 / NULLIF(SUM(has_visit), 0), 4) AS visit_to_purchase_rate
FROM funnel_sessions
GROUP BY source, device, day
`

var _cohortRetentionViewQuery = `
CREATE VIEW v_cohort_retention AS
SELECT
	cohort_week,
	cohort_index,
	users_active,
	cohort_size,
	retention_rate
FROM cohort_retention_rates
`

var _abTestSummaryViewQuery = `
CREATE VIEW v_ab_test_summary AS
SELECT
	ab_test_id,
	variant,
	COUNT(*) AS sessions,
	SUM(has_checkout) AS checkout_sessions,
	SUM(has_purchase) AS purchase_sessions,
	ROUND(SUM(has_checkout) * 1.0 / NULLIF(COUNT(*), 0), 4) AS checkout_rate,
	ROUND(SUM(has_purchase) * 1.0 / NULLIF(COUNT(*), 0), 4) AS purchase_rate,
	ROUND(SUM(has_purchase) * 1.0 / NULLIF(SUM(has_checkout), 0), 4) AS checkout_to_purchase_rate
FROM funnel_sessions
WHERE variant IS NOT NULL
GROUP BY ab_test_id, variant
`

var _abTestSessionsViewQuery = `
CREATE VIEW v_ab_test_sessions AS
SELECT
	user_id,
	session_id,
	session_index,
	ab_test_id,
	variant,
	source,
	device,
	has_visit,
	has_product_view,
	has_add_to_cart,
	has_checkout,
	has_purchase,
	session_start_ts,
	session_end_ts,
	duration_minutes
FROM funnel_sessions
WHERE variant IS NOT NULL
`

func (ac *AnalyticsCalculator) CreateReportingViews() error {
	views := []struct {
		name  string
		query string
	}{
		{analyticsUtils.View_FunnelMetrics, _funnelMetricsViewQuery},
		{analyticsUtils.View_CohortRetention, _cohortRetentionViewQuery},
		{analyticsUtils.View_AbTestSummary, _abTestSummaryViewQuery},
		{analyticsUtils.View_AbTestSessions, _abTestSessionsViewQuery},
	}

	for _, view := range views {
		if res := ac.grm.Exec(fmt.Sprintf("drop view if exists %s", view.name)); res.Error != nil {
			ac.logger.Sugar().Errorw("Failed to drop view", "view", view.name, "error", res.Error)
			return res.Error
		}
		if res := ac.grm.Exec(view.query); res.Error != nil {
			ac.logger.Sugar().Errorw("Failed to create view", "view", view.name, "error", res.Error)
			return res.Error
		}
		ac.logger.Sugar().Debugw("Created reporting view", "view", view.name)
	}
	return nil
}

type FunnelMetricsRow struct {
	Source                 *string  `gorm:"column:source" csv:"source"`
	Device                 *string  `gorm:"column:device" csv:"device"`
	Day                    string   `gorm:"column:day" csv:"day"`
	VisitSessions          uint64   `gorm:"column:visit_sessions" csv:"visit_sessions"`
	ProductViewSessions    uint64   `gorm:"column:product_view_sessions" csv:"product_view_sessions"`
	AddToCartSessions      uint64   `gorm:"column:add_to_cart_sessions" csv:"add_to_cart_sessions"`
	CheckoutSessions       uint64   `gorm:"column:checkout_sessions" csv:"checkout_sessions"`
	PurchaseSessions       uint64   `gorm:"column:purchase_sessions" csv:"purchase_sessions"`
	VisitToViewRate        *float64 `gorm:"column:visit_to_view_rate" csv:"visit_to_view_rate"`
	ViewToCartRate         *float64 `gorm:"column:view_to_cart_rate" csv:"view_to_cart_rate"`
	CartToCheckoutRate     *float64 `gorm:"column:cart_to_checkout_rate" csv:"cart_to_checkout_rate"`
	CheckoutToPurchaseRate *float64 `gorm:"column:checkout_to_purchase_rate" csv:"checkout_to_purchase_rate"`
	VisitToPurchaseRate    *float64 `gorm:"column:visit_to_purchase_rate" csv:"visit_to_purchase_rate"`
}

type CohortRetentionViewRow struct {
	CohortWeek    string   `gorm:"column:cohort_week" csv:"cohort_week"`
	CohortIndex   uint64   `gorm:"column:cohort_index" csv:"cohort_index"`
	UsersActive   uint64   `gorm:"column:users_active" csv:"users_active"`
	CohortSize    uint64   `gorm:"column:cohort_size" csv:"cohort_size"`
	RetentionRate *float64 `gorm:"column:retention_rate" csv:"retention_rate"`
}

type AbTestSummaryRow struct {
	AbTestId               string   `gorm:"column:ab_test_id" csv:"ab_test_id"`
	Variant                string   `gorm:"column:variant" csv:"variant"`
	Sessions               uint64   `gorm:"column:sessions" csv:"sessions"`
	CheckoutSessions       uint64   `gorm:"column:checkout_sessions" csv:"checkout_sessions"`
	PurchaseSessions       uint64   `gorm:"column:purchase_sessions" csv:"purchase_sessions"`
	CheckoutRate           *float64 `gorm:"column:checkout_rate" csv:"checkout_rate"`
	PurchaseRate           *float64 `gorm:"column:purchase_rate" csv:"purchase_rate"`
	CheckoutToPurchaseRate *float64 `gorm:"column:checkout_to_purchase_rate" csv:"checkout_to_purchase_rate"`
}

func (ac *AnalyticsCalculator) ListFunnelMetrics() ([]*FunnelMetricsRow, error) {
	var rows []*FunnelMetricsRow
	res := ac.grm.Table(analyticsUtils.View_FunnelMetrics).
		Order("day asc, source asc, device asc").
		Find(&rows)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list funnel metrics", "error", res.Error)
		return nil, res.Error
	}
	return rows, nil
}

func (ac *AnalyticsCalculator) ListCohortRetentionView() ([]*CohortRetentionViewRow, error) {
	var rows []*CohortRetentionViewRow
	res := ac.grm.Table(analyticsUtils.View_CohortRetention).
		Order("cohort_week asc, cohort_index asc").
		Find(&rows)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list cohort retention view", "error", res.Error)
		return nil, res.Error
	}
	return rows, nil
}

func (ac *AnalyticsCalculator) ListAbTestSummary() ([]*AbTestSummaryRow, error) {
	var rows []*AbTestSummaryRow
	res := ac.grm.Table(analyticsUtils.View_AbTestSummary).
		Order("ab_test_id asc, variant asc").
		Find(&rows)
	if res.Error != nil {
		ac.logger.Sugar().Errorw("Failed to list ab test summary", "error", res.Error)
		return nil, res.Error
	}
	return rows, nil
}
