package tests

import (
	"github.com/trailhead-labs/funnelcast/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func GetConfig() *config.Config {
	return config.NewDefaultConfig()
}

// HydrateSql runs a fixture's insert statements against the test database.
func HydrateSql(grm *gorm.DB, l *zap.Logger, contents string) error {
	res := grm.Exec(contents)
	if res.Error != nil {
		l.Sugar().Errorw("Failed to execute fixture sql", "error", res.Error)
		return res.Error
	}
	return nil
}

// Shared end-to-end fixture: three users signing up in the week of Monday
// 2024-01-01. Users 1 and 2 purchase during the signup week, user 2 again in
// week 1; user 3 never purchases successfully. Events cover a 29 minute gap
// (same session), a 31 minute gap (new session) and a purchase without a
// checkout in the same session.
const UsersFixtureSql = `
insert into users_raw (user_id, signup_date, device, country, loyalty_tier) values
(1, '2024-01-01', 'mobile', 'US', 'gold'),
(2, '2024-01-03', 'desktop', 'DE', 'bronze'),
(3, '2024-01-07', 'mobile', 'US', 'silver');
`

const EventsFixtureSql = `
insert into events_raw (event_id, user_id, session_id, event_type, page, product_id, product_category, ts, source, device, ab_test_id, variant) values
('e01', 1, 'raw-s1', 'visit',        '/home',     NULL, NULL,          '2024-01-01 10:00:00', 'google', 'mobile', NULL,          NULL),
('e02', 1, 'raw-s1', 'product_view', '/p/11',     11,   'electronics', '2024-01-01 10:29:00', 'google', 'mobile', NULL,          NULL),
('e03', 1, 'raw-s1', 'add_to_cart',  '/cart',     11,   'electronics', '2024-01-01 10:58:00', 'google', 'mobile', NULL,          NULL),
('e04', 1, NULL,     'visit',        '/home',     NULL, NULL,          '2024-01-01 11:29:01', 'email',  'mobile', 'exp_checkout', 'control'),
('e05', 1, NULL,     'checkout',     '/checkout', 11,   'electronics', '2024-01-01 11:30:00', 'email',  'mobile', 'exp_checkout', 'control'),
('e06', 1, NULL,     'purchase',     '/done',     11,   'electronics', '2024-01-01 11:31:00', 'email',  'mobile', 'exp_checkout', 'control'),
('e07', 2, 'raw-s1', 'visit',        '/home',     NULL, NULL,          '2024-01-03 09:00:00', 'direct', 'desktop', 'exp_checkout', 'treatment'),
('e08', 2, 'raw-s1', 'purchase',     '/done',     22,   'books',       '2024-01-03 09:05:00', 'direct', 'desktop', 'exp_checkout', 'treatment'),
('e09', 3, NULL,     'visit',        '/home',     NULL, NULL,          '2024-01-07 20:00:00', 'ads',    'mobile', NULL,          NULL);
`

const OrdersFixtureSql = `
insert into orders_raw (order_id, user_id, product_id, product_category, price, quantity, discount_amount, ts, payment_status) values
('o01', 1, 11, 'electronics', 99.99, 1, 0.0,  '2024-01-01 11:31:00', 'success'),
('o02', 2, 22, 'books',       19.50, 2, 2.0,  '2024-01-03 09:05:00', 'success'),
('o03', 2, 22, 'books',       19.50, 1, 0.0,  '2024-01-10 12:00:00', 'success'),
('o04', 3, 33, 'unknown',     10.00, 1, 0.0,  '2024-01-08 15:00:00', 'failed');
`
