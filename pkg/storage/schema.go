package storage

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	Table_UsersRaw  = "users_raw"
	Table_EventsRaw = "events_raw"
	Table_OrdersRaw = "orders_raw"
)

// RawTableStore owns the raw input relations that every analytics stage
// reads from and never writes to.
type RawTableStore struct {
	logger *zap.Logger
	grm    *gorm.DB
}

func NewRawTableStore(grm *gorm.DB, l *zap.Logger) (*RawTableStore, error) {
	s := &RawTableStore{
		logger: l,
		grm:    grm,
	}
	if err := s.initializeRawSchema(); err != nil {
		l.Sugar().Errorw("Failed to initialize raw schema", zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (s *RawTableStore) initializeRawSchema() error {
	queries := []string{
		`create table if not exists users_raw (
			user_id INTEGER NOT NULL,
			signup_date DATE NOT NULL,
			device TEXT NOT NULL,
			country TEXT NOT NULL,
			loyalty_tier TEXT NOT NULL
		)`,
		`create table if not exists events_raw (
			event_id TEXT NOT NULL,
			user_id INTEGER NOT NULL,
			session_id TEXT,
			event_type TEXT NOT NULL,
			page TEXT,
			product_id INTEGER,
			product_category TEXT,
			ts DATETIME NOT NULL,
			source TEXT,
			device TEXT,
			ab_test_id TEXT,
			variant TEXT
		)`,
		`create table if not exists orders_raw (
			order_id TEXT NOT NULL,
			user_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			product_category TEXT NOT NULL,
			price REAL NOT NULL,
			quantity INTEGER NOT NULL,
			discount_amount REAL NOT NULL,
			ts DATETIME NOT NULL,
			payment_status TEXT NOT NULL
		)`,
		`create index if not exists idx_users_user_id on users_raw(user_id)`,
		`create index if not exists idx_events_user_id on events_raw(user_id)`,
		`create index if not exists idx_events_ts on events_raw(ts)`,
		`create index if not exists idx_orders_user_id on orders_raw(user_id)`,
		`create index if not exists idx_orders_ts on orders_raw(ts)`,
	}
	for _, query := range queries {
		if res := s.grm.Exec(query); res.Error != nil {
			s.logger.Sugar().Errorw("Failed to create raw table", "error", res.Error)
			return res.Error
		}
	}
	return nil
}

func (s *RawTableStore) CountRows(tableName string) (int64, error) {
	var count int64
	res := s.grm.Table(tableName).Count(&count)
	if res.Error != nil {
		return 0, res.Error
	}
	return count, nil
}
