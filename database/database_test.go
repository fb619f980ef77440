package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

func TestSeedDataPopulatesCatalog(t *testing.T) {
	db := NewTestDB(t)

	require.NoError(t, SeedData(db))

	var categories, items, prices int64
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Item{}).Count(&items)
	db.Model(&models.PriceEntry{}).Count(&prices)

	assert.EqualValues(t, 8, categories)
	assert.EqualValues(t, 14, items)
	assert.NotZero(t, prices)

	// the catalog includes GIDs observed before their name was discovered
	var nameless int64
	db.Model(&models.Item{}).Where("name IS NULL").Count(&nameless)
	assert.EqualValues(t, 2, nameless)
}

func TestSeedDataSkipsWhenPopulated(t *testing.T) {
	db := NewTestDB(t)

	require.NoError(t, SeedData(db))
	var before int64
	db.Model(&models.PriceEntry{}).Count(&before)

	require.NoError(t, SeedData(db))
	var after int64
	db.Model(&models.PriceEntry{}).Count(&after)

	assert.Equal(t, before, after)
}

func TestSeedDataForceReseeds(t *testing.T) {
	db := NewTestDB(t)

	require.NoError(t, SeedData(db))
	require.NoError(t, SeedDataWithOptions(db, true))

	var items int64
	db.Model(&models.Item{}).Count(&items)
	assert.EqualValues(t, 14, items)
}

func TestDeleteItemCascadesPrices(t *testing.T) {
	db := NewTestDB(t)

	item := models.Item{GameID: 5555}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&models.PriceEntry{
		ItemID:   item.ItemID,
		Price:    250,
		Quantity: models.LotSingle,
	}).Error)

	require.NoError(t, db.Delete(&models.Item{}, item.ItemID).Error)

	var orphaned int64
	db.Model(&models.PriceEntry{}).Where("item_id = ?", item.ItemID).Count(&orphaned)
	assert.Zero(t, orphaned)
}

func TestDeleteCategoryKeepsItems(t *testing.T) {
	db := NewTestDB(t)

	cat := models.Category{GameID: 77, Name: "Hammer"}
	require.NoError(t, db.Create(&cat).Error)
	item := models.Item{GameID: 6161, CategoryID: &cat.CategoryID}
	require.NoError(t, db.Create(&item).Error)

	require.NoError(t, db.Delete(&models.Category{}, cat.CategoryID).Error)

	var kept models.Item
	require.NoError(t, db.First(&kept, item.ItemID).Error)
	assert.Nil(t, kept.CategoryID)
}

func TestRunSimulationExtendsHistory(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, SeedData(db))

	var before int64
	db.Model(&models.PriceEntry{}).Count(&before)

	end := time.Now()
	start := end.AddDate(0, 0, -2)
	sim, err := NewMarketSimulation(SimulationConfig{
		DB:        db,
		StartDate: start,
		EndDate:   end,
		Seed:      42,
	})
	require.NoError(t, err)
	require.NoError(t, sim.Run())

	var after int64
	db.Model(&models.PriceEntry{}).Count(&after)
	assert.Greater(t, after, before)

	// random walk never produces non-positive prices
	var invalid int64
	db.Model(&models.PriceEntry{}).Where("price < 1").Count(&invalid)
	assert.Zero(t, invalid)
}

func TestRunSimulationRequiresCatalog(t *testing.T) {
	db := NewTestDB(t)

	err := RunSimulation(db, time.Now().AddDate(0, 0, -1), time.Now())
	assert.Error(t, err)
}

func TestMigrationStatus(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, SeedData(db))

	statuses := MigrationStatus(db)
	require.Len(t, statuses, 3)
	for _, s := range statuses {
		assert.True(t, s.Exists, "table %s should exist", s.Table)
	}
}
