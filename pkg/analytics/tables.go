package analytics

type UserSession struct {
	EventId         string   `gorm:"column:event_id"`
	UserId          uint64   `gorm:"column:user_id"`
	RawSessionId    string   `gorm:"column:raw_session_id"`
	EventType       string   `gorm:"column:event_type"`
	Page            *string  `gorm:"column:page"`
	ProductId       *uint64  `gorm:"column:product_id"`
	ProductCategory *string  `gorm:"column:product_category"`
	Ts              string   `gorm:"column:ts"`
	Source          *string  `gorm:"column:source"`
	Device          *string  `gorm:"column:device"`
	AbTestId        *string  `gorm:"column:ab_test_id"`
	Variant         *string  `gorm:"column:variant"`
	GapMinutes      *float64 `gorm:"column:gap_minutes"`
	IsNewSession    uint64   `gorm:"column:is_new_session"`
	SessionIndex    uint64   `gorm:"column:session_index"`
	SessionId       string   `gorm:"column:session_id"`
}

type FunnelSession struct {
	UserId                 uint64  `gorm:"column:user_id"`
	SessionId              string  `gorm:"column:session_id"`
	SessionIndex           uint64  `gorm:"column:session_index"`
	HasVisit               bool    `gorm:"column:has_visit"`
	HasProductView         bool    `gorm:"column:has_product_view"`
	HasAddToCart           bool    `gorm:"column:has_add_to_cart"`
	HasCheckout            bool    `gorm:"column:has_checkout"`
	HasPurchase            bool    `gorm:"column:has_purchase"`
	VisitCount             uint64  `gorm:"column:visit_count"`
	ProductViewCount       uint64  `gorm:"column:product_view_count"`
	AddToCartCount         uint64  `gorm:"column:add_to_cart_count"`
	CheckoutCount          uint64  `gorm:"column:checkout_count"`
	PurchaseCount          uint64  `gorm:"column:purchase_count"`
	SessionStartTs         string  `gorm:"column:session_start_ts"`
	SessionEndTs           string  `gorm:"column:session_end_ts"`
	DurationMinutes        float64 `gorm:"column:duration_minutes"`
	Source                 *string `gorm:"column:source"`
	Device                 *string `gorm:"column:device"`
	AbTestId               *string `gorm:"column:ab_test_id"`
	Variant                *string `gorm:"column:variant"`
	DistinctProductsViewed uint64  `gorm:"column:distinct_products_viewed"`
}

type CohortUser struct {
	UserId     uint64 `gorm:"column:user_id"`
	CohortWeek string `gorm:"column:cohort_week"`
}

type CohortActivity struct {
	UserId       uint64 `gorm:"column:user_id"`
	ActivityWeek string `gorm:"column:activity_week"`
}

type CohortRetention struct {
	CohortWeek  string `gorm:"column:cohort_week"`
	CohortIndex uint64 `gorm:"column:cohort_index"`
	UsersActive uint64 `gorm:"column:users_active"`
}

type CohortSize struct {
	CohortWeek string `gorm:"column:cohort_week"`
	CohortSize uint64 `gorm:"column:cohort_size"`
}

type CohortRetentionRate struct {
	CohortWeek    string   `gorm:"column:cohort_week"`
	CohortIndex   uint64   `gorm:"column:cohort_index"`
	UsersActive   uint64   `gorm:"column:users_active"`
	CohortSize    uint64   `gorm:"column:cohort_size"`
	RetentionRate *float64 `gorm:"column:retention_rate"`
}
