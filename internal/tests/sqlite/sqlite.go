package sqlite

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	sqlite2 "github.com/trailhead-labs/funnelcast/pkg/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func GetInMemorySqliteDatabaseConnection(l *zap.Logger) (*gorm.DB, error) {
	db, err := sqlite2.NewGormSqliteFromSqlite(sqlite2.NewSqlite(&sqlite2.SqliteConfig{
		Path: sqlite2.SqliteInMemoryPath,
	}))
	if err != nil {
		panic(err)
	}
	return db, nil
}

func GetFileBasedSqliteDatabaseConnection(l *zap.Logger) (string, *gorm.DB, error) {
	fileName, err := uuid.NewUUID()
	if err != nil {
		panic(err)
	}
	basePath := fmt.Sprintf("%s/%s", os.TempDir(), fileName)
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return "", nil, err
	}

	filePath := fmt.Sprintf("%s/test.db", basePath)
	db, err := sqlite2.NewGormSqliteFromSqlite(sqlite2.NewSqlite(&sqlite2.SqliteConfig{
		Path: filePath,
	}))
	if err != nil {
		panic(err)
	}
	return filePath, db, nil
}

func DeleteTestSqliteDB(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to delete test sqlite db '%s': %v\n", filePath, err)
	}
}
