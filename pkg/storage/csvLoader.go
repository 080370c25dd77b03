package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/trailhead-labs/funnelcast/pkg/sqlite/helpers"
	"gorm.io/gorm"
)

const insertBatchSize = 1000

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CsvLoader bulk-loads the upstream CSV exports into the raw tables. Each
// table is fully replaced inside one transaction, so a failed load leaves
// the previous contents visible.
type CsvLoader struct {
	store *RawTableStore
}

func NewCsvLoader(store *RawTableStore) *CsvLoader {
	return &CsvLoader{store: store}
}

func (cl *CsvLoader) LoadAll(dataDir string) error {
	if err := cl.LoadUsers(filepath.Join(dataDir, "users.csv")); err != nil {
		return err
	}
	if err := cl.LoadEvents(filepath.Join(dataDir, "events.csv")); err != nil {
		return err
	}
	if err := cl.LoadOrders(filepath.Join(dataDir, "orders.csv")); err != nil {
		return err
	}
	return nil
}

func readCsvFile[T any](path string) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open csv file '%s'", path)
	}
	defer f.Close()

	rows := make([]*T, 0)
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.Wrapf(err, "failed to parse csv file '%s'", path)
	}
	return rows, nil
}

func validateTimestamp(ts string) error {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, ts); err == nil {
			return nil
		}
	}
	return fmt.Errorf("malformed timestamp '%s'", ts)
}

func replaceTable[T any](grm *gorm.DB, tableName string, rows []*T) error {
	bar := progressbar.Default(int64(len(rows)), fmt.Sprintf("loading %s", tableName))
	_, err := helpers.WrapTxAndCommit(func(tx *gorm.DB) (interface{}, error) {
		if res := tx.Exec(fmt.Sprintf("delete from %s", tableName)); res.Error != nil {
			return nil, res.Error
		}
		for i := 0; i < len(rows); i += insertBatchSize {
			end := i + insertBatchSize
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[i:end]
			if res := tx.Table(tableName).Create(&batch); res.Error != nil {
				return nil, res.Error
			}
			_ = bar.Add(end - i)
		}
		return nil, nil
	}, grm, nil)
	_ = bar.Finish()
	return err
}

func (cl *CsvLoader) LoadUsers(path string) error {
	l := cl.store.logger

	users, err := readCsvFile[RawUser](path)
	if err != nil {
		return err
	}

	if err := replaceTable(cl.store.grm, Table_UsersRaw, users); err != nil {
		l.Sugar().Errorw("Failed to load users", "error", err)
		return err
	}
	l.Sugar().Infow("Loaded users", "rows", len(users))
	return nil
}

func (cl *CsvLoader) LoadEvents(path string) error {
	l := cl.store.logger

	events, err := readCsvFile[RawEvent](path)
	if err != nil {
		return err
	}
	for _, e := range events {
		if err := validateTimestamp(e.Ts); err != nil {
			return errors.Wrapf(err, "event '%s'", e.EventId)
		}
	}

	if err := replaceTable(cl.store.grm, Table_EventsRaw, events); err != nil {
		l.Sugar().Errorw("Failed to load events", "error", err)
		return err
	}
	l.Sugar().Infow("Loaded events", "rows", len(events))
	return nil
}

// LoadOrders loads orders and backfills product_category from events_raw,
// since the upstream orders export does not carry it. Orders whose product
// never appears in events keep the 'unknown' category.
func (cl *CsvLoader) LoadOrders(path string) error {
	l := cl.store.logger

	orders, err := readCsvFile[RawOrder](path)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err := validateTimestamp(o.Ts); err != nil {
			return errors.Wrapf(err, "order '%s'", o.OrderId)
		}
		o.ProductCategory = "unknown"
	}

	if err := replaceTable(cl.store.grm, Table_OrdersRaw, orders); err != nil {
		l.Sugar().Errorw("Failed to load orders", "error", err)
		return err
	}

	enrichQuery := `
		update orders_raw
		set product_category = coalesce(
			(
				select e.product_category
				from events_raw e
				where e.product_id = orders_raw.product_id
				and e.product_category is not null
				limit 1
			),
			'unknown'
		)
	`
	if res := cl.store.grm.Exec(enrichQuery); res.Error != nil {
		l.Sugar().Errorw("Failed to enrich orders with product categories", "error", res.Error)
		return res.Error
	}
	l.Sugar().Infow("Loaded orders", "rows", len(orders))
	return nil
}
