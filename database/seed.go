package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/metrics"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
	"gorm.io/gorm"
)

// SeedData seeds the auction-house catalog into empty tables
func SeedData(db *gorm.DB) error {
	return SeedDataWithOptions(db, false)
}

// SeedDataWithOptions seeds the catalog, optionally wiping existing data first
func SeedDataWithOptions(db *gorm.DB, force bool) error {
	// Check if data already exists
	var count int64
	db.Model(&models.Item{}).Count(&count)
	if count > 0 && !force {
		slog.Info("database already has data, skipping seed")
		return nil
	}

	// Use transaction for data integrity
	return db.Transaction(func(tx *gorm.DB) error {
		if force {
			// Children before parents so FK rules never block the wipe
			for _, table := range []string{"price_entries", "items", "categories"} {
				if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
					return fmt.Errorf("failed to clear table %s: %w", table, err)
				}
			}
		}

		// 1. Seed Categories
		categoryMap, err := seedCategories(tx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		// 2. Seed Items
		itemMap, err := seedItems(tx, categoryMap)
		if err != nil {
			return fmt.Errorf("failed to seed items: %w", err)
		}

		// 3. Seed an initial burst of price observations
		if err := seedInitialPrices(tx, itemMap); err != nil {
			return fmt.Errorf("failed to seed price entries: %w", err)
		}

		slog.Info("seed completed", "categories", len(categoryMap), "items", len(itemMap))
		return nil
	})
}

// seedCategories creates the auction-house tabs and returns name -> id
func seedCategories(tx *gorm.DB) (map[string]uint, error) {
	categories := []models.Category{
		{GameID: 1, Name: "Amulet"},
		{GameID: 2, Name: "Bow"},
		{GameID: 6, Name: "Sword"},
		{GameID: 9, Name: "Ring"},
		{GameID: 10, Name: "Belt"},
		{GameID: 11, Name: "Boots"},
		{GameID: 12, Name: "Potion"},
		{GameID: 15, Name: "Resource"},
	}

	if err := tx.Create(&categories).Error; err != nil {
		return nil, err
	}

	categoryMap := make(map[string]uint, len(categories))
	for _, c := range categories {
		categoryMap[c.Name] = c.CategoryID
	}
	return categoryMap, nil
}

// seedItems creates the known catalog keyed by GID and returns gid -> id.
// A couple of entries deliberately have no name yet: their GID showed up on
// the market before the item itself was looked up.
func seedItems(tx *gorm.DB, categories map[string]uint) (map[int]uint, error) {
	items := []models.Item{
		{GameID: 303, Name: strPtr("Wheat"), CategoryID: uintPtr(categories["Resource"])},
		{GameID: 371, Name: strPtr("Gobball Wool"), CategoryID: uintPtr(categories["Resource"])},
		{GameID: 312, Name: strPtr("Iron Ore"), CategoryID: uintPtr(categories["Resource"])},
		{GameID: 460, Name: strPtr("Ash Wood"), CategoryID: uintPtr(categories["Resource"])},
		{GameID: 515, Name: strPtr("Minor Healing Potion"), CategoryID: uintPtr(categories["Potion"])},
		{GameID: 548, Name: strPtr("Recall Potion"), CategoryID: uintPtr(categories["Potion"])},
		{GameID: 120, Name: strPtr("Gobball Sword"), CategoryID: uintPtr(categories["Sword"])},
		{GameID: 6, Name: strPtr("Iron Sword"), CategoryID: uintPtr(categories["Sword"])},
		{GameID: 28, Name: strPtr("Short Bow"), CategoryID: uintPtr(categories["Bow"])},
		{GameID: 89, Name: strPtr("Hunting Bow"), CategoryID: uintPtr(categories["Bow"])},
		{GameID: 711, Name: strPtr("Small Amulet of Vitality"), CategoryID: uintPtr(categories["Amulet"])},
		{GameID: 733, Name: strPtr("Gobball Ring"), CategoryID: uintPtr(categories["Ring"])},
		{GameID: 7781, CategoryID: uintPtr(categories["Resource"])},
		{GameID: 9042},
	}

	if err := tx.Create(&items).Error; err != nil {
		return nil, err
	}

	itemMap := make(map[int]uint, len(items))
	for _, it := range items {
		itemMap[it.GameID] = it.ItemID
	}
	return itemMap, nil
}

// Typical unit prices in Kamas, by GID
var seedUnitPrices = map[int]int64{
	303: 12,
	371: 45,
	312: 38,
	460: 20,
	515: 150,
	548: 1200,
	120: 2500,
	6:   800,
	28:  950,
	89:  3200,
	711: 5400,
	733: 1800,
}

// seedInitialPrices writes a few days of observations for every item,
// covering all three lot sizes
func seedInitialPrices(tx *gorm.DB, items map[int]uint) error {
	now := time.Now()
	var entries []models.PriceEntry

	for gid, itemID := range items {
		unit, ok := seedUnitPrices[gid]
		if !ok {
			unit = 100
		}

		for day := 3; day >= 0; day-- {
			at := now.AddDate(0, 0, -day)
			for _, lot := range []int{models.LotSingle, models.LotTen, models.LotHundred} {
				price := unit * int64(lot)
				// bulk lots trade at a small per-unit discount
				if lot > 1 {
					price = price * 95 / 100
				}
				entries = append(entries, models.PriceEntry{
					ItemID:     itemID,
					Price:      price,
					Quantity:   lot,
					ObservedAt: &at,
					CreatedAt:  at,
				})
			}
		}
	}

	if err := tx.Create(&entries).Error; err != nil {
		return err
	}
	metrics.PriceEntriesInserted.Add(float64(len(entries)))
	return nil
}

// Helper functions for creating pointers
func strPtr(s string) *string {
	return &s
}

func uintPtr(u uint) *uint {
	return &u
}
