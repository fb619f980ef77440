package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

// CategoryList returns every category ordered by name.
func CategoryList(c *fiber.Ctx) error {
	db := database.GetDB()

	var categories []models.Category
	if err := db.Order("name").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list categories: " + err.Error(),
		})
	}
	if categories == nil {
		categories = []models.Category{}
	}

	return c.JSON(categories)
}

// CategoryView returns a single category.
func CategoryView(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid category id",
		})
	}

	var category models.Category
	err = db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "category not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load category: " + err.Error(),
		})
	}

	return c.JSON(category)
}

// CategoryItems returns all items belonging to one category, ordered
// by name.
func CategoryItems(c *fiber.Ctx) error {
	db := database.GetDB()

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid category id",
		})
	}

	var exists int64
	if err := db.Model(&models.Category{}).Where("category_id = ?", id).Count(&exists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load category: " + err.Error(),
		})
	}
	if exists == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "category not found",
		})
	}

	var items []models.Item
	err = db.
		Where("category_id = ?", id).
		Order("name, item_id").
		Find(&items).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list items: " + err.Error(),
		})
	}
	if items == nil {
		items = []models.Item{}
	}

	return c.JSON(items)
}
