package db

import (
	"fmt"
	"log"

	"softmatrices_site_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the relay event database; nil when DB_PATH is not configured
var DB *gorm.DB

// Initialize opens the relay event database at dbPath and migrates its schema
func Initialize(dbPath string, environment string) error {
	// WAL lets the async recorder write while the CLI or retention job reads
	database, err := open(dbPath+"?_journal_mode=WAL&_busy_timeout=5000", environment)
	if err != nil {
		return err
	}

	if err := Migrate(database); err != nil {
		return err
	}

	DB = database
	log.Printf("Relay event database ready at %s (WAL mode enabled)", dbPath)
	return nil
}

// OpenMemory opens a named shared-cache in-memory database, migrated and isolated by name
func OpenMemory(name string) (*gorm.DB, error) {
	database, err := open("file:"+name+"?mode=memory&cache=shared&_busy_timeout=5000", "test")
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

func open(dsn string, environment string) (*gorm.DB, error) {
	logLevel := logger.Info
	switch environment {
	case "production":
		logLevel = logger.Warn
	case "test":
		logLevel = logger.Silent
	}

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// Migrate creates or updates the relay event schema
func Migrate(database *gorm.DB) error {
	if database == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := database.AutoMigrate(&models.RelayEvent{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
