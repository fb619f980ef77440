package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	dateLayout = "2006-01-02"
)

// ItemList returns one page of the item catalog wrapped in a page
// envelope. Pages are zero-based. Optional filters: search matches the
// item name case-insensitively, categoryId restricts to one category.
func ItemList(c *fiber.Ctx) error {
	db := database.GetDB()

	page := c.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}
	size := c.QueryInt("size", defaultPageSize)
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	search := c.Query("search", "")
	categoryID := c.QueryInt("categoryId", 0)

	query := db.Model(&models.Item{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to count items: " + err.Error(),
		})
	}

	var items []models.Item
	err := query.
		Preload("Category").
		Order("name, item_id").
		Limit(size).
		Offset(page * size).
		Find(&items).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list items: " + err.Error(),
		})
	}

	return c.JSON(models.NewItemPage(items, page, size, total))
}

// ItemView returns a single item with its category.
func ItemView(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid item id",
		})
	}

	var item models.Item
	err = db.Preload("Category").First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "item not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load item: " + err.Error(),
		})
	}

	return c.JSON(item)
}

// ItemPrices returns the price history of an item in recording order.
// startDate and endDate are inclusive calendar dates (YYYY-MM-DD) and
// each bound works on its own.
func ItemPrices(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid item id",
		})
	}

	var exists int64
	if err := db.Model(&models.Item{}).Where("item_id = ?", id).Count(&exists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load item: " + err.Error(),
		})
	}
	if exists == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "item not found",
		})
	}

	query := db.Where("item_id = ?", id)
	if s := c.Query("startDate", ""); s != "" {
		start, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid startDate, expected YYYY-MM-DD",
			})
		}
		query = query.Where("created_at >= ?", start)
	}
	if e := c.Query("endDate", ""); e != "" {
		end, err := time.Parse(dateLayout, e)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid endDate, expected YYYY-MM-DD",
			})
		}
		// Inclusive: anything before the next midnight counts
		query = query.Where("created_at < ?", end.AddDate(0, 0, 1))
	}

	var entries []models.PriceEntry
	if err := query.Order("entry_id").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list prices: " + err.Error(),
		})
	}
	if entries == nil {
		entries = []models.PriceEntry{}
	}

	return c.JSON(entries)
}
