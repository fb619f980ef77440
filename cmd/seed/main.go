package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/config"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"gorm.io/gorm"
)

func main() {
	// Define flags
	force := flag.Bool("force", false, "Force re-seed even if data exists")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("🌱 Starting Database Seeding Tool")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	fmt.Printf("📊 Database: %s@%s:%s/%s\n\n", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Check connection
	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatal("Database connection check failed:", err)
	}

	if *force {
		fmt.Println("⚠️  Force flag enabled. Existing catalog and prices will be cleared.")
	}

	// Seed data
	if err := database.SeedDataWithOptions(database.DB, *force); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Show statistics
	fmt.Println("\n📊 Database Statistics:")
	showTableStats(database.DB)

	fmt.Println("\n✨ Seeding completed successfully!")
	fmt.Println("\n📝 Next Steps:")
	fmt.Println("1. Run the application:")
	fmt.Println("   go run main.go")
	fmt.Println("\n2. Generate more price history:")
	fmt.Println("   go run cmd/simulate/main.go")
}

func showHelp() {
	fmt.Println("Database Seeding Tool")
	fmt.Println("====================")
	fmt.Println("\nUsage:")
	fmt.Println("  go run cmd/seed/main.go [flags]")
	fmt.Println("\nFlags:")
	fmt.Println("  -force    Force re-seed by clearing existing data")
	fmt.Println("  -help     Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Seed empty database")
	fmt.Println("  go run cmd/seed/main.go")
	fmt.Println("\n  # Force re-seed (clear and re-insert data)")
	fmt.Println("  go run cmd/seed/main.go -force")
}

func showTableStats(db *gorm.DB) {
	tables := []string{"categories", "items", "price_entries"}

	for _, table := range tables {
		var count int64
		db.Table(table).Count(&count)
		fmt.Printf("  %-15s: %d rows\n", table, count)
	}
}
