package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&Category{},

		// 2. Tables with single dependencies
		&Item{}, // depends on: Category

		// 3. Time-series tables
		&PriceEntry{}, // depends on: Item
	}
}
