package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/config"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
	"gorm.io/gorm"
)

func main() {
	// Parse command line flags
	var (
		startDate  = flag.String("start", "", "Simulation start date (YYYY-MM-DD), default 30 days ago")
		endDate    = flag.String("end", "", "Simulation end date (YYYY-MM-DD), default today")
		wipe       = flag.Bool("wipe", false, "Delete price entries in the period before running")
		seed       = flag.Bool("seed", false, "Run initial seed if database is empty")
		noQueryLog = flag.Bool("no-query-log", false, "Disable query logging during simulation")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	if err := database.InitializeWithOptions(&cfg.Database, *noQueryLog); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	log.Println("✅ Connected to database successfully")

	// Check if initial seed is needed
	if *seed {
		var itemCount int64
		db.Model(&models.Item{}).Count(&itemCount)

		if itemCount == 0 {
			log.Println("Database is empty, running initial seed...")
			if err := database.SeedData(db); err != nil {
				log.Fatalf("Failed to seed initial data: %v", err)
			}
			log.Println("✅ Initial seed completed")
		} else {
			log.Printf("Database already has %d items, skipping seed", itemCount)
		}
	}

	// Parse dates, defaulting to the last 30 days
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now
	if *startDate != "" {
		start, err = time.Parse("2006-01-02", *startDate)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
	}
	if *endDate != "" {
		end, err = time.Parse("2006-01-02", *endDate)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
	}

	// Validate date range
	if end.Before(start) {
		log.Fatalf("End date must be after start date")
	}

	// Clear the period if requested, warn otherwise
	if *wipe {
		if err := clearPeriod(db, start, end); err != nil {
			log.Fatalf("Failed to clear period: %v", err)
		}
		log.Println("✅ Cleared existing price entries for the period")
	} else if hasExistingData(db, start, end) {
		log.Println("⚠️  Warning: Price entries already exist for this period.")
		log.Println("   Use -wipe flag to remove existing data before running.")
	}

	// Run simulation
	log.Printf("Starting simulation from %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	if err := database.RunSimulation(db, start, end); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	log.Println("✅ Simulation completed successfully!")
	printStatistics(db, start, end)
}

// clearPeriod removes price entries recorded inside the period
func clearPeriod(db *gorm.DB, start, end time.Time) error {
	return db.
		Where("created_at >= ? AND created_at < ?", start, end.AddDate(0, 0, 1)).
		Delete(&models.PriceEntry{}).Error
}

// hasExistingData checks whether the period already holds price entries
func hasExistingData(db *gorm.DB, start, end time.Time) bool {
	var count int64
	db.Model(&models.PriceEntry{}).
		Where("created_at >= ? AND created_at < ?", start, end.AddDate(0, 0, 1)).
		Count(&count)
	return count > 0
}

// printStatistics prints simulation statistics
func printStatistics(db *gorm.DB, start, end time.Time) {
	endExcl := end.AddDate(0, 0, 1)

	fmt.Println("\n╔══════════════════════════════════════════════╗")
	fmt.Println("║          SIMULATION STATISTICS               ║")
	fmt.Println("╚══════════════════════════════════════════════╝")

	// Observations written in the period
	var entryCount int64
	db.Model(&models.PriceEntry{}).
		Where("created_at >= ? AND created_at < ?", start, endExcl).
		Count(&entryCount)

	fmt.Printf("\n📈 OBSERVATIONS\n")
	fmt.Printf("   Price entries:   %d\n", entryCount)

	days := int(end.Sub(start).Hours()/24) + 1
	if days > 0 {
		fmt.Printf("   Per day:         %.1f\n", float64(entryCount)/float64(days))
	}

	// Price spread per lot size
	type lotStat struct {
		Quantity int
		Count    int64
		Min      int64
		Max      int64
		Avg      float64
	}
	var lotStats []lotStat
	db.Model(&models.PriceEntry{}).
		Select("quantity, COUNT(*) as count, MIN(price) as min, MAX(price) as max, AVG(price) as avg").
		Where("created_at >= ? AND created_at < ?", start, endExcl).
		Group("quantity").
		Order("quantity").
		Scan(&lotStats)

	fmt.Printf("\n💰 PRICES BY LOT SIZE\n")
	for _, s := range lotStats {
		fmt.Printf("   x%-4d %6d entries   min %-12s max %-12s avg %s\n",
			s.Quantity, s.Count,
			models.FormatKamas(s.Min),
			models.FormatKamas(s.Max),
			models.FormatKamas(int64(math.Round(s.Avg))))
	}

	// Most observed items
	type topItem struct {
		Name   *string
		GameID int
		Count  int64
	}
	var topItems []topItem
	db.Table("price_entries pe").
		Select("i.name, i.game_id, COUNT(*) as count").
		Joins("JOIN items i ON pe.item_id = i.item_id").
		Where("pe.created_at >= ? AND pe.created_at < ?", start, endExcl).
		Group("i.item_id, i.name, i.game_id").
		Order("count DESC").
		Limit(5).
		Scan(&topItems)

	fmt.Printf("\n🏆 TOP 5 MOST OBSERVED ITEMS\n")
	for i, it := range topItems {
		name := fmt.Sprintf("Item #%d", it.GameID)
		if it.Name != nil {
			name = *it.Name
		}
		fmt.Printf("   %d. %-30s %d entries\n", i+1, name, it.Count)
	}

	fmt.Println("\n" + strings.Repeat("═", 50))
}
