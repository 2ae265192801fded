package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prediction-engine/internal/models"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	return MigrateModels(DB)
}

// MigrateModels migrates the schema onto the given connection. Split out so
// tests can run it against in-memory sqlite.
func MigrateModels(db *gorm.DB) error {
	migrateModels := []interface{}{
		&models.User{},
		&models.Selection{},
		&models.Accumulator{},
		&models.AccumulatorLeg{},
		&models.LedgerEntry{},
	}

	for _, model := range migrateModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
