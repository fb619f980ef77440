package database

import (
	"fmt"
	"log/slog"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	slog.Info("starting GORM AutoMigrate")

	// Schema statements are no-ops on backends without schema support
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS hdv").Error; err != nil {
		slog.Warn("could not create schema", "schema", "hdv", "error", err)
	}
	if err := db.Exec("SET search_path TO hdv").Error; err != nil {
		slog.Warn("could not set search_path", "schema", "hdv", "error", err)
	}

	// models.AllModels is ordered so parent tables migrate before children
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	if err := CreateIndexes(db); err != nil {
		slog.Warn("some indexes could not be created", "error", err)
	}

	slog.Info("GORM AutoMigrate completed")
	return nil
}

// CheckConnection verifies the database connection is usable
func CheckConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// CreateIndexes creates performance indexes
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{"idx_items_category", "CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id)"},
		{"idx_price_entries_created", "CREATE INDEX IF NOT EXISTS idx_price_entries_created ON price_entries(created_at)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			slog.Warn("failed to create index", "index", idx.name, "error", err)
		}
	}

	return nil
}

// TableStatus reports the migration state of one table
type TableStatus struct {
	Table  string
	Exists bool
	Rows   int64
}

// MigrationStatus returns existence and row counts for every model table
func MigrationStatus(db *gorm.DB) []TableStatus {
	all := models.AllModels()
	statuses := make([]TableStatus, 0, len(all))
	for _, model := range all {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			continue
		}
		status := TableStatus{Table: stmt.Schema.Table}
		status.Exists = db.Migrator().HasTable(model)
		if status.Exists {
			db.Model(model).Count(&status.Rows)
		}
		statuses = append(statuses, status)
	}
	return statuses
}
