package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trailhead-labs/funnelcast/internal/tests"
	"github.com/trailhead-labs/funnelcast/internal/tests/sqlite"
)

func Test_FunnelSessions(t *testing.T) {
	dbFileName, _, grm, l, calculator, err := setupAnalyticsTest()
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.DeleteTestSqliteDB(dbFileName)
	defer teardownAnalyticsTest(grm)

	t.Run("Should hydrate and sessionize raw events", func(t *testing.T) {
		err := tests.HydrateSql(grm, l, tests.EventsFixtureSql)
		assert.Nil(t, err)
		err = calculator.GenerateAndInsertUserSessions()
		assert.Nil(t, err)
	})

	t.Run("Should aggregate one row per session with independent stage flags", func(t *testing.T) {
		err := calculator.GenerateAndInsertFunnelSessions()
		assert.Nil(t, err)

		funnelSessions, err := calculator.ListFunnelSessions()
		assert.Nil(t, err)
		// user 1 has two sessions, users 2 and 3 one each.
		assert.Equal(t, 4, len(funnelSessions))

		bySlot := make(map[string]*FunnelSession)
		for _, fs := range funnelSessions {
			bySlot[fmt.Sprintf("%d_%d", fs.UserId, fs.SessionIndex)] = fs
		}

		first := bySlot["1_1"]
		assert.True(t, first.HasVisit)
		assert.True(t, first.HasProductView)
		assert.True(t, first.HasAddToCart)
		assert.False(t, first.HasCheckout)
		assert.False(t, first.HasPurchase)
		assert.Equal(t, uint64(1), first.VisitCount)
		assert.Equal(t, uint64(1), first.ProductViewCount)
		assert.Equal(t, "2024-01-01 10:00:00", first.SessionStartTs)
		assert.Equal(t, "2024-01-01 10:58:00", first.SessionEndTs)
		assert.Equal(t, 58.0, first.DurationMinutes)

		second := bySlot["1_2"]
		assert.True(t, second.HasCheckout)
		assert.True(t, second.HasPurchase)
		assert.False(t, second.HasProductView)
	})

	t.Run("Should keep non-monotonic flags as observed", func(t *testing.T) {
		funnelSessions, err := calculator.ListFunnelSessions()
		assert.Nil(t, err)

		bySlot := make(map[string]*FunnelSession)
		for _, fs := range funnelSessions {
			bySlot[fmt.Sprintf("%d_%d", fs.UserId, fs.SessionIndex)] = fs
		}

		// user 2 purchased without a checkout event; the flags stay as-is.
		session := bySlot["2_1"]
		assert.True(t, session.HasPurchase)
		assert.False(t, session.HasCheckout)
	})

	t.Run("Should take the first non-null attribute values deterministically", func(t *testing.T) {
		funnelSessions, err := calculator.ListFunnelSessions()
		assert.Nil(t, err)

		bySlot := make(map[string]*FunnelSession)
		for _, fs := range funnelSessions {
			bySlot[fmt.Sprintf("%d_%d", fs.UserId, fs.SessionIndex)] = fs
		}

		second := bySlot["1_2"]
		assert.NotNil(t, second.Source)
		assert.Equal(t, "email", *second.Source)
		assert.NotNil(t, second.AbTestId)
		assert.Equal(t, "exp_checkout", *second.AbTestId)
		assert.NotNil(t, second.Variant)
		assert.Equal(t, "control", *second.Variant)

		// user 3's single visit carries no ab test attributes.
		assert.Nil(t, bySlot["3_1"].AbTestId)
		assert.Nil(t, bySlot["3_1"].Variant)
	})

	t.Run("Should count distinct products viewed", func(t *testing.T) {
		funnelSessions, err := calculator.ListFunnelSessions()
		assert.Nil(t, err)

		bySlot := make(map[string]*FunnelSession)
		for _, fs := range funnelSessions {
			bySlot[fmt.Sprintf("%d_%d", fs.UserId, fs.SessionIndex)] = fs
		}

		// Only e02 is a product_view in user 1's first session.
		assert.Equal(t, uint64(1), bySlot["1_1"].DistinctProductsViewed)
		assert.Equal(t, uint64(0), bySlot["1_2"].DistinctProductsViewed)
	})
}
