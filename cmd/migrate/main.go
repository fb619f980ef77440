package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/config"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
)

func main() {
	// Command line flags
	var (
		drop   = flag.Bool("drop", false, "Drop all tables before migration")
		schema = flag.Bool("schema", false, "Create schema only (no migration)")
		status = flag.Bool("status", false, "Show table status and exit")
		help   = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("🚀 Starting Database Migration Tool")
	fmt.Printf("📊 Database: %s@%s:%s/%s\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Check connection
	if err := database.CheckConnection(database.DB); err != nil {
		log.Printf("⚠️  Warning: %v", err)
	}

	// Status only if requested
	if *status {
		showStatus()
		return
	}

	// Drop tables if requested
	if *drop {
		fmt.Println("⚠️  Dropping all tables in hdv schema...")
		if err := dropAllTables(); err != nil {
			log.Fatalf("❌ Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped")
	}

	// Create schema only if requested
	if *schema {
		fmt.Println("📁 Creating schema only...")
		if err := database.DB.Exec("CREATE SCHEMA IF NOT EXISTS hdv").Error; err != nil {
			log.Fatalf("❌ Failed to create schema: %v", err)
		}
		if err := database.DB.Exec("SET search_path TO hdv").Error; err != nil {
			log.Fatalf("❌ Failed to set search path: %v", err)
		}
		fmt.Println("✅ Schema created successfully")
		return
	}

	// Run AutoMigrate
	fmt.Println("🔄 Running GORM AutoMigrate...")
	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("❌ Failed to run migration: %v", err)
	}

	fmt.Println("✅ Migration completed successfully!")
	showStatus()
}

func showStatus() {
	fmt.Println("📊 Table status:")
	for _, s := range database.MigrationStatus(database.DB) {
		if s.Exists {
			fmt.Printf("  ✅ %-15s %d rows\n", s.Table, s.Rows)
		} else {
			fmt.Printf("  ❌ %-15s missing\n", s.Table)
		}
	}
}

func dropAllTables() error {
	// Get all table names in hdv schema
	var tables []string
	err := database.DB.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'hdv'
		AND table_type = 'BASE TABLE'
	`).Scan(&tables).Error

	if err != nil {
		return err
	}

	// Drop each table
	for _, table := range tables {
		fmt.Printf("  Dropping table: %s\n", table)
		if err := database.DB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS hdv.%s CASCADE", table)).Error; err != nil {
			log.Printf("  Warning: Failed to drop %s: %v", table, err)
		}
	}

	return nil
}

func showHelp() {
	fmt.Println(`
Database Migration Tool for Kama Ledger

Usage:
  go run cmd/migrate/main.go [options]

Options:
  -drop     Drop all tables before migration (WARNING: Data loss!)
  -schema   Create schema only, no table migration
  -status   Show table status and exit
  -help     Show this help message

Examples:
  # Run migration (create/update tables)
  go run cmd/migrate/main.go

  # Drop all tables and recreate
  go run cmd/migrate/main.go -drop

  # Inspect current tables
  go run cmd/migrate/main.go -status

Environment:
  Requires .env file or environment variables for database configuration:
  - DB_HOST
  - DB_PORT
  - DB_USER
  - DB_PASSWORD
  - DB_NAME
`)
}
