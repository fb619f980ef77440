package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

// DashboardPage renders the market dashboard: catalog counters, the
// category list for the filter dropdown and the timestamp of the most
// recent observation. Search results and the price chart load through
// the JSON API from the page itself.
func DashboardPage(c *fiber.Ctx) error {
	db := database.GetDB()

	var stats struct {
		TotalItems      int64
		NamedItems      int64
		TotalCategories int64
		TotalPrices     int64
	}

	db.Model(&models.Item{}).Count(&stats.TotalItems)
	db.Model(&models.Item{}).Where("name IS NOT NULL").Count(&stats.NamedItems)
	db.Model(&models.Category{}).Count(&stats.TotalCategories)
	db.Model(&models.PriceEntry{}).Count(&stats.TotalPrices)

	lastObserved := ""
	var latest models.PriceEntry
	err := db.Order("entry_id DESC").First(&latest).Error
	if err == nil {
		lastObserved = latest.CreatedAt.Format("02/01/2006 15:04")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var categories []models.Category
	if err := db.Order("name").Find(&categories).Error; err != nil {
		return err
	}

	var recent []models.PriceEntry
	if err := db.Preload("Item").Order("entry_id DESC").Limit(5).Find(&recent).Error; err != nil {
		return err
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":           "Market Dashboard",
		"Active":          "dashboard",
		"TotalItems":      stats.TotalItems,
		"NamedItems":      stats.NamedItems,
		"TotalCategories": stats.TotalCategories,
		"TotalPrices":     stats.TotalPrices,
		"LastObserved":    lastObserved,
		"Categories":      categories,
		"RecentEntries":   recent,
	}, "layouts/base")
}
