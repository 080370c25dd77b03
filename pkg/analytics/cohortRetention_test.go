package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trailhead-labs/funnelcast/internal/tests"
	"github.com/trailhead-labs/funnelcast/internal/tests/sqlite"
)

func Test_CohortRetention(t *testing.T) {
	dbFileName, _, grm, l, calculator, err := setupAnalyticsTest()
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.DeleteTestSqliteDB(dbFileName)
	defer teardownAnalyticsTest(grm)

	t.Run("Should hydrate raw users and orders", func(t *testing.T) {
		assert.Nil(t, tests.HydrateSql(grm, l, tests.UsersFixtureSql))
		assert.Nil(t, tests.HydrateSql(grm, l, tests.OrdersFixtureSql))
	})

	t.Run("Should assign each user to exactly one signup-week cohort", func(t *testing.T) {
		err := calculator.GenerateAndInsertCohortUsers()
		assert.Nil(t, err)

		cohortUsers, err := calculator.ListCohortUsers()
		assert.Nil(t, err)
		assert.Equal(t, 3, len(cohortUsers))

		// 2024-01-01 is a Monday; all three signups fall in that week,
		// including the Sunday signup on 2024-01-07.
		for _, cu := range cohortUsers {
			assert.Equal(t, "2024-01-01", cu.CohortWeek)
		}
	})

	t.Run("Should deduplicate weekly activity and ignore failed payments", func(t *testing.T) {
		err := calculator.GenerateAndInsertCohortActivity()
		assert.Nil(t, err)

		activity, err := calculator.ListCohortActivity()
		assert.Nil(t, err)

		// user 1 week 0, user 2 weeks 0 and 1; user 3's failed order is out.
		assert.Equal(t, 3, len(activity))
		assert.Equal(t, uint64(1), activity[0].UserId)
		assert.Equal(t, "2024-01-01", activity[0].ActivityWeek)
		assert.Equal(t, uint64(2), activity[1].UserId)
		assert.Equal(t, "2024-01-01", activity[1].ActivityWeek)
		assert.Equal(t, uint64(2), activity[2].UserId)
		assert.Equal(t, "2024-01-08", activity[2].ActivityWeek)
	})

	t.Run("Should compute retention counts, sizes and rates", func(t *testing.T) {
		assert.Nil(t, calculator.GenerateAndInsertCohortRetention())
		assert.Nil(t, calculator.GenerateAndInsertCohortSizes())
		assert.Nil(t, calculator.GenerateAndInsertCohortRetentionRates())

		sizes, err := calculator.ListCohortSizes()
		assert.Nil(t, err)
		assert.Equal(t, 1, len(sizes))
		assert.Equal(t, uint64(3), sizes[0].CohortSize)

		rates, err := calculator.ListCohortRetentionRates()
		assert.Nil(t, err)
		assert.Equal(t, 2, len(rates))

		// Week 0: 2 of 3 users active. This is the week-0 conversion
		// rate, not "100% retention".
		assert.Equal(t, "2024-01-01", rates[0].CohortWeek)
		assert.Equal(t, uint64(0), rates[0].CohortIndex)
		assert.Equal(t, uint64(2), rates[0].UsersActive)
		assert.Equal(t, uint64(3), rates[0].CohortSize)
		assert.NotNil(t, rates[0].RetentionRate)
		assert.Equal(t, 0.6667, *rates[0].RetentionRate)

		// Week 1: 1 of 3.
		assert.Equal(t, uint64(1), rates[1].CohortIndex)
		assert.Equal(t, uint64(1), rates[1].UsersActive)
		assert.NotNil(t, rates[1].RetentionRate)
		assert.Equal(t, 0.3333, *rates[1].RetentionRate)

		// No row for week 2: absent data is not 0% retention.
		for _, r := range rates {
			assert.NotEqual(t, uint64(2), r.CohortIndex)
		}
	})

	t.Run("Retention rates never exceed 1", func(t *testing.T) {
		rates, err := calculator.ListCohortRetentionRates()
		assert.Nil(t, err)
		for _, r := range rates {
			if r.RetentionRate != nil {
				assert.GreaterOrEqual(t, *r.RetentionRate, 0.0)
				assert.LessOrEqual(t, *r.RetentionRate, 1.0)
			}
		}
	})

	t.Run("Should be idempotent on unchanged input", func(t *testing.T) {
		first, err := calculator.ListCohortRetentionRates()
		assert.Nil(t, err)

		assert.Nil(t, calculator.GenerateAndInsertCohortRetention())
		assert.Nil(t, calculator.GenerateAndInsertCohortSizes())
		assert.Nil(t, calculator.GenerateAndInsertCohortRetentionRates())

		second, err := calculator.ListCohortRetentionRates()
		assert.Nil(t, err)
		assert.Equal(t, first, second)
	})
}

func Test_CohortRetention_Anomalies(t *testing.T) {
	dbFileName, _, grm, l, calculator, err := setupAnalyticsTest()
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.DeleteTestSqliteDB(dbFileName)
	defer teardownAnalyticsTest(grm)

	fixture := `
	insert into users_raw (user_id, signup_date, device, country, loyalty_tier) values
	(10, '2024-03-11', 'mobile', 'US', 'gold'),
	(11, '2024-03-11', 'desktop', 'US', 'gold');

	insert into orders_raw (order_id, user_id, product_id, product_category, price, quantity, discount_amount, ts, payment_status) values
	('a01', 10, 50, 'toys', 5.00, 1, 0.0, '2024-03-01 10:00:00', 'success'),
	('a02', 11, 50, 'toys', 5.00, 1, 0.0, '2024-03-12 10:00:00', 'success');
	`
	if err := tests.HydrateSql(grm, l, fixture); err != nil {
		t.Fatal(err)
	}

	t.Run("Purchases before the signup week are excluded, not errors", func(t *testing.T) {
		assert.Nil(t, calculator.GenerateAndInsertCohortUsers())
		assert.Nil(t, calculator.GenerateAndInsertCohortActivity())
		assert.Nil(t, calculator.GenerateAndInsertCohortRetention())
		assert.Nil(t, calculator.GenerateAndInsertCohortSizes())
		assert.Nil(t, calculator.GenerateAndInsertCohortRetentionRates())

		rates, err := calculator.ListCohortRetentionRates()
		assert.Nil(t, err)

		// Only user 11's in-week purchase counts: one row, index 0,
		// 1 of 2 users. user 10's pre-signup purchase is dropped but
		// still contributes to cohort size.
		assert.Equal(t, 1, len(rates))
		assert.Equal(t, uint64(0), rates[0].CohortIndex)
		assert.Equal(t, uint64(1), rates[0].UsersActive)
		assert.Equal(t, uint64(2), rates[0].CohortSize)
		assert.Equal(t, 0.5, *rates[0].RetentionRate)
	})
}

func Test_CohortRetention_NoActivity(t *testing.T) {
	dbFileName, _, grm, l, calculator, err := setupAnalyticsTest()
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.DeleteTestSqliteDB(dbFileName)
	defer teardownAnalyticsTest(grm)

	// 150 users sign up in the same week; none ever purchase.
	fixture := `insert into users_raw (user_id, signup_date, device, country, loyalty_tier)
	with recursive seq(n) as (select 1 union all select n + 1 from seq where n < 150)
	select n, '2024-05-06', 'mobile', 'US', 'bronze' from seq;`
	if err := tests.HydrateSql(grm, l, fixture); err != nil {
		t.Fatal(err)
	}

	t.Run("A cohort with no activity has a size but no retention rows", func(t *testing.T) {
		assert.Nil(t, calculator.GenerateAndInsertCohortUsers())
		assert.Nil(t, calculator.GenerateAndInsertCohortActivity())
		assert.Nil(t, calculator.GenerateAndInsertCohortRetention())
		assert.Nil(t, calculator.GenerateAndInsertCohortSizes())
		assert.Nil(t, calculator.GenerateAndInsertCohortRetentionRates())

		sizes, err := calculator.ListCohortSizes()
		assert.Nil(t, err)
		assert.Equal(t, 1, len(sizes))
		assert.Equal(t, "2024-05-06", sizes[0].CohortWeek)
		assert.Equal(t, uint64(150), sizes[0].CohortSize)

		rates, err := calculator.ListCohortRetentionRates()
		assert.Nil(t, err)
		assert.Equal(t, 0, len(rates))
	})
}
