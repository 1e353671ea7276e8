package testhelpers

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
)

var (
	openSQLite    = func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), &gorm.Config{}) }
	migrateSchema = func(db *gorm.DB) error {
		return db.AutoMigrate(&models.User{}, &models.Interview{}, &models.Question{}, &models.Feedback{})
	}
	dropInterviewTableFn = func(db *gorm.DB) error { return db.Migrator().DropTable(&models.Interview{}) }
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return db
}

// DropInterviewTable removes the interviews table to force repository errors.
func DropInterviewTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := dropInterviewTableFn(db); err != nil {
		panic(fmt.Sprintf("failed to drop interview table: %v", err))
	}
}
