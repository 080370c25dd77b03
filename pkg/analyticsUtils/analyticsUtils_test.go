package analyticsUtils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trailhead-labs/funnelcast/internal/logger"
	"github.com/trailhead-labs/funnelcast/internal/tests/sqlite"
)

func Test_RenderQueryTemplate(t *testing.T) {
	query := `select * from events_raw where gap > {{.inactivityMinutes}}`

	rendered, err := RenderQueryTemplate(query, map[string]interface{}{
		"inactivityMinutes": 30,
	})
	assert.Nil(t, err)
	assert.Equal(t, `select * from events_raw where gap > 30`, rendered)
}

func Test_GenerateAndInsertFromQuery(t *testing.T) {
	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: true})

	dbFileName, grm, err := sqlite.GetFileBasedSqliteDatabaseConnection(l)
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.DeleteTestSqliteDB(dbFileName)

	if res := grm.Exec(`create table source_numbers (n INTEGER)`); res.Error != nil {
		t.Fatal(res.Error)
	}
	if res := grm.Exec(`insert into source_numbers values (1), (2), (3)`); res.Error != nil {
		t.Fatal(res.Error)
	}

	t.Run("Materializes a table from a query", func(t *testing.T) {
		err := GenerateAndInsertFromQuery(grm, "doubled", `select n * 2 as n from source_numbers`, l)
		assert.Nil(t, err)

		var count int64
		res := grm.Table("doubled").Count(&count)
		assert.Nil(t, res.Error)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Replaces the previous contents wholesale", func(t *testing.T) {
		if res := grm.Exec(`delete from source_numbers where n > 1`); res.Error != nil {
			t.Fatal(res.Error)
		}

		err := GenerateAndInsertFromQuery(grm, "doubled", `select n * 2 as n from source_numbers`, l)
		assert.Nil(t, err)

		var count int64
		res := grm.Table("doubled").Count(&count)
		assert.Nil(t, res.Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("A failing query leaves the previous table untouched", func(t *testing.T) {
		err := GenerateAndInsertFromQuery(grm, "doubled", `select n from no_such_table`, l)
		assert.NotNil(t, err)

		var count int64
		res := grm.Table("doubled").Count(&count)
		assert.Nil(t, res.Error)
		assert.Equal(t, int64(1), count)
	})
}
