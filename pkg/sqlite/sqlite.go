package sqlite

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const SqliteInMemoryPath = "file::memory:?cache=shared"

type SqliteConfig struct {
	Path string
}

func NewSqlite(cfg *SqliteConfig) gorm.Dialector {
	return sqlite.Open(cfg.Path)
}

func NewGormSqliteFromSqlite(sqlite gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA journal_mode = WAL;`,
	}

	for _, pragma := range pragmas {
		res := db.Exec(pragma)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return db, nil
}
