package storage

// Raw input relations. CSV tags match the upstream export headers; optional
// columns are pointers so an empty CSV field round-trips as SQL NULL.

type RawUser struct {
	UserId      uint64 `csv:"user_id" gorm:"column:user_id"`
	SignupDate  string `csv:"signup_date" gorm:"column:signup_date"`
	Device      string `csv:"device" gorm:"column:device"`
	Country     string `csv:"country" gorm:"column:country"`
	LoyaltyTier string `csv:"loyalty_tier" gorm:"column:loyalty_tier"`
}

type RawEvent struct {
	EventId         string  `csv:"event_id" gorm:"column:event_id"`
	UserId          uint64  `csv:"user_id" gorm:"column:user_id"`
	SessionId       *string `csv:"session_id" gorm:"column:session_id"`
	EventType       string  `csv:"event_type" gorm:"column:event_type"`
	Page            *string `csv:"page" gorm:"column:page"`
	ProductId       *uint64 `csv:"product_id" gorm:"column:product_id"`
	ProductCategory *string `csv:"product_category" gorm:"column:product_category"`
	Ts              string  `csv:"ts" gorm:"column:ts"`
	Source          *string `csv:"source" gorm:"column:source"`
	Device          *string `csv:"device" gorm:"column:device"`
	AbTestId        *string `csv:"ab_test_id" gorm:"column:ab_test_id"`
	Variant         *string `csv:"variant" gorm:"column:variant"`
}

type RawOrder struct {
	OrderId         string  `csv:"order_id" gorm:"column:order_id"`
	UserId          uint64  `csv:"user_id" gorm:"column:user_id"`
	ProductId       uint64  `csv:"product_id" gorm:"column:product_id"`
	ProductCategory string  `csv:"-" gorm:"column:product_category"`
	Price           float64 `csv:"price" gorm:"column:price"`
	Quantity        uint64  `csv:"quantity" gorm:"column:quantity"`
	DiscountAmount  float64 `csv:"discount_amount" gorm:"column:discount_amount"`
	Ts              string  `csv:"ts" gorm:"column:ts"`
	PaymentStatus   string  `csv:"payment_status" gorm:"column:payment_status"`
}

const (
	EventType_Visit       = "visit"
	EventType_ProductView = "product_view"
	EventType_AddToCart   = "add_to_cart"
	EventType_Checkout    = "checkout"
	EventType_Purchase    = "purchase"

	PaymentStatus_Success  = "success"
	PaymentStatus_Failed   = "failed"
	PaymentStatus_Refunded = "refunded"
)
