package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

// newTestAPI brings up a seeded in-memory database and a bare Fiber app
// carrying only the JSON routes. Template rendering stays out of these
// tests on purpose.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()

	db := database.NewTestDB(t)
	require.NoError(t, database.SeedData(db))

	app := fiber.New()
	RegisterAPI(app.Group("/api"))
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string, out interface{}) int {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), "body: %s", body)
	}
	return resp.StatusCode
}

func findCategory(t *testing.T, app *fiber.App, name string) models.Category {
	t.Helper()

	var categories []models.Category
	status := getJSON(t, app, "/api/categories", &categories)
	require.Equal(t, fiber.StatusOK, status)
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not seeded", name)
	return models.Category{}
}

func TestItemListFirstPage(t *testing.T) {
	app := newTestAPI(t)

	var page models.ItemPage
	status := getJSON(t, app, "/api/items", &page)

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.EqualValues(t, 14, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Content, 10)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestItemListLastPage(t *testing.T) {
	app := newTestAPI(t)

	var page models.ItemPage
	status := getJSON(t, app, "/api/items?page=1", &page)

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Content, 4)
	assert.False(t, page.First)
	assert.True(t, page.Last)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)
}

func TestItemListPageBeyondEnd(t *testing.T) {
	app := newTestAPI(t)

	var page models.ItemPage
	status := getJSON(t, app, "/api/items?page=9", &page)

	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, page.Content)
	assert.EqualValues(t, 14, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.First)
}

func TestItemListSizeBounds(t *testing.T) {
	app := newTestAPI(t)

	var page models.ItemPage
	status := getJSON(t, app, "/api/items?size=500", &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 100, page.Size)
	assert.Len(t, page.Content, 14)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)

	status = getJSON(t, app, "/api/items?size=-3", &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 10, page.Size)
}

func TestItemListSearchIsCaseInsensitive(t *testing.T) {
	app := newTestAPI(t)

	var page models.ItemPage
	status := getJSON(t, app, "/api/items?search=GOBBALL", &page)

	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 3, page.TotalElements)
	require.Len(t, page.Content, 3)
	for _, item := range page.Content {
		require.NotNil(t, item.Name)
		assert.Contains(t, *item.Name, "Gobball")
	}
}

func TestItemListCategoryFilter(t *testing.T) {
	app := newTestAPI(t)
	resource := findCategory(t, app, "Resource")

	var page models.ItemPage
	status := getJSON(t, app, "/api/items?categoryId="+itoa(resource.CategoryID), &page)

	require.Equal(t, fiber.StatusOK, status)
	// 4 named resources plus the nameless GID 7781
	assert.EqualValues(t, 5, page.TotalElements)
	for _, item := range page.Content {
		require.NotNil(t, item.CategoryID)
		assert.Equal(t, resource.CategoryID, *item.CategoryID)
	}

	status = getJSON(t, app, "/api/items?categoryId="+itoa(resource.CategoryID)+"&search=wo", &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, page.TotalElements)
}

func TestItemViewPreloadsCategory(t *testing.T) {
	app := newTestAPI(t)

	var item models.Item
	status := getJSON(t, app, "/api/items/1", &item)

	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, item.ItemID)
	assert.Equal(t, 303, item.GameID)
	require.NotNil(t, item.Name)
	assert.Equal(t, "Wheat", *item.Name)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Resource", item.Category.Name)
}

func TestItemViewNotFound(t *testing.T) {
	app := newTestAPI(t)

	var body map[string]string
	status := getJSON(t, app, "/api/items/999", &body)

	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "item not found", body["error"])
}

func TestItemViewRejectsBadID(t *testing.T) {
	app := newTestAPI(t)

	var body map[string]string
	status := getJSON(t, app, "/api/items/notanumber", &body)

	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid item id", body["error"])
}

func TestItemPricesHistoryInRecordingOrder(t *testing.T) {
	app := newTestAPI(t)

	var entries []models.PriceEntry
	status := getJSON(t, app, "/api/items/1/prices", &entries)

	require.Equal(t, fiber.StatusOK, status)
	// 4 seeded days, 3 lot sizes each
	require.Len(t, entries, 12)
	assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].EntryID < entries[j].EntryID
	}))
	for _, e := range entries {
		assert.EqualValues(t, 1, e.ItemID)
	}

	// Wheat trades at 12 a unit, bulk lots 5% off
	assert.EqualValues(t, 12, entries[0].Price)
	assert.Equal(t, models.LotSingle, entries[0].Quantity)
	assert.EqualValues(t, 114, entries[1].Price)
	assert.Equal(t, models.LotTen, entries[1].Quantity)
	assert.EqualValues(t, 1140, entries[2].Price)
	assert.Equal(t, models.LotHundred, entries[2].Quantity)
}

func TestItemPricesUnknownItem(t *testing.T) {
	app := newTestAPI(t)

	var body map[string]string
	status := getJSON(t, app, "/api/items/999/prices", &body)

	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "item not found", body["error"])
}

func TestItemPricesDateRange(t *testing.T) {
	app := newTestAPI(t)
	db := database.GetDB()

	name := "Test Relic"
	item := models.Item{GameID: 5555, Name: &name}
	require.NoError(t, db.Create(&item).Error)

	days := []time.Time{
		time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
	}
	for i, at := range days {
		entry := models.PriceEntry{
			ItemID:    item.ItemID,
			Price:     int64(100 + i),
			Quantity:  models.LotSingle,
			CreatedAt: at,
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	base := "/api/items/" + itoa(item.ItemID) + "/prices"

	var entries []models.PriceEntry
	status := getJSON(t, app, base+"?startDate=2024-05-02", &entries)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, entries, 2)
	assert.EqualValues(t, 101, entries[0].Price)
	assert.EqualValues(t, 102, entries[1].Price)

	status = getJSON(t, app, base+"?endDate=2024-05-02", &entries)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, entries, 2)
	assert.EqualValues(t, 100, entries[0].Price)
	assert.EqualValues(t, 101, entries[1].Price)

	status = getJSON(t, app, base+"?startDate=2024-05-02&endDate=2024-05-02", &entries)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 101, entries[0].Price)

	status = getJSON(t, app, base+"?startDate=2024-06-01", &entries)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestItemPricesRejectsMalformedDates(t *testing.T) {
	app := newTestAPI(t)

	var body map[string]string
	status := getJSON(t, app, "/api/items/1/prices?startDate=yesterday", &body)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid startDate, expected YYYY-MM-DD", body["error"])

	status = getJSON(t, app, "/api/items/1/prices?endDate=2024-13-45", &body)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid endDate, expected YYYY-MM-DD", body["error"])
}

func TestCategoryListSortedByName(t *testing.T) {
	app := newTestAPI(t)

	var categories []models.Category
	status := getJSON(t, app, "/api/categories", &categories)

	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, categories, 8)
	assert.Equal(t, "Amulet", categories[0].Name)
	assert.Equal(t, "Sword", categories[7].Name)
	assert.True(t, sort.SliceIsSorted(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	}))
}

func TestCategoryView(t *testing.T) {
	app := newTestAPI(t)

	var category models.Category
	status := getJSON(t, app, "/api/categories/1", &category)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, category.GameID)
	assert.Equal(t, "Amulet", category.Name)

	var body map[string]string
	status = getJSON(t, app, "/api/categories/99", &body)
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "category not found", body["error"])
}

func TestCategoryItems(t *testing.T) {
	app := newTestAPI(t)
	sword := findCategory(t, app, "Sword")

	var items []models.Item
	status := getJSON(t, app, "/api/categories/"+itoa(sword.CategoryID)+"/items", &items)

	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, items, 2)
	assert.Equal(t, "Gobball Sword", *items[0].Name)
	assert.Equal(t, "Iron Sword", *items[1].Name)

	var body map[string]string
	status = getJSON(t, app, "/api/categories/99/items", &body)
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "category not found", body["error"])
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestAPI(t)

	var body map[string]string
	status := getJSON(t, app, "/api/health", &body)

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}
