package web

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/client"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

// The Go client talking to the real route table over a real socket.
func TestClientAgainstAPI(t *testing.T) {
	db := database.NewTestDB(t)
	require.NoError(t, database.SeedData(db))

	app := fiber.New()
	RegisterAPI(app.Group("/api"))

	srv := httptest.NewServer(adaptor.FiberApp(app))
	defer srv.Close()

	cli := client.New(srv.URL + "/api")
	ctx := context.Background()

	page, err := cli.ListItems(ctx, client.ItemQuery{Search: "gobball"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalElements)
	require.Len(t, page.Content, 3)

	// Names sort ascending, so the ring comes first
	first := page.Content[0]
	require.NotNil(t, first.Name)
	assert.Equal(t, "Gobball Ring", *first.Name)

	item, err := cli.GetItem(ctx, first.ItemID)
	require.NoError(t, err)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Ring", item.Category.Name)

	prices, err := cli.ListItemPrices(ctx, item.ItemID, client.PriceRange{})
	require.NoError(t, err)
	require.Len(t, prices, 12)

	stats, ok := models.SummarizePrices(prices)
	require.True(t, ok)
	assert.Equal(t, 12, stats.Count)
	assert.EqualValues(t, 1800, stats.Min)
	assert.EqualValues(t, 171000, stats.Max)
	assert.EqualValues(t, 63300, stats.Avg)

	categories, err := cli.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 8)

	ringItems, err := cli.ListCategoryItems(ctx, *item.CategoryID)
	require.NoError(t, err)
	require.Len(t, ringItems, 1)
	assert.Equal(t, "Gobball Ring", *ringItems[0].Name)

	health, err := cli.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	// Missing rows surface as classified API errors, not retries
	_, err = cli.GetItem(ctx, 99999)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "item not found", apiErr.Message)
	assert.True(t, client.IsNotFound(err))
}
