package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize initializes the database connection
func Initialize(cfg *config.DatabaseConfig) error {
	return InitializeWithOptions(cfg, false)
}

// InitializeWithOptions initializes the database connection with options
func InitializeWithOptions(cfg *config.DatabaseConfig, disableQueryLog bool) error {
	var err error

	// Configure GORM logging
	var gormLogger logger.Interface
	if disableQueryLog {
		gormLogger = logger.Default.LogMode(logger.Silent)
	} else {
		gormLogger = NewGormLogger(slog.Default())
	}

	gormConfig := &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
		QueryFields: true,
	}

	// Open database connection
	DB, err = gorm.Open(postgres.Open(cfg.GetDSN()), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Keep all tables under the hdv schema
	if err := DB.Exec("CREATE SCHEMA IF NOT EXISTS hdv").Error; err != nil {
		slog.Warn("could not create schema", "schema", "hdv", "error", err)
	}
	if err := DB.Exec("SET search_path TO hdv").Error; err != nil {
		slog.Warn("could not set search_path", "schema", "hdv", "error", err)
	}

	slog.Info("database connection established", "host", cfg.Host, "database", cfg.DBName)
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Ping verifies the database connection is alive
func Ping() error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
