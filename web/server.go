package web

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/web/handlers"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server
func NewServer() *Server {
	// Initialize template engine
	engine := html.New("./web/templates", ".html")
	engine.Reload(true) // Enable hot reload for development

	// Add custom template functions
	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	})
	engine.AddFunc("formatDateYMD", func(t time.Time) string {
		return t.Format("2006-01-02")
	})
	engine.AddFunc("formatKamas", models.FormatKamas)
	engine.AddFunc("json", func(v interface{}) string {
		b, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}
		return string(b)
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	// Create Fiber app with template engine
	app := fiber.New(fiber.Config{
		Views:   engine,
		AppName: "Kama Ledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			slog.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err)

			// API callers always get JSON
			if strings.HasPrefix(c.Path(), "/api") {
				return c.Status(code).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			// HTML error page
			return c.Status(code).Render("pages/error", fiber.Map{
				"Title": "Error",
				"Error": err.Error(),
				"Code":  code,
			}, "layouts/base")
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))
	app.Use(middleware.Metrics())

	// Static files
	app.Static("/static", "./web/static")

	// Setup routes
	setupRoutes(app)

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	slog.Info("server starting", "addr", "http://localhost:"+port)
	return s.app.Listen(":" + port)
}

// Shutdown stops the server, letting in-flight requests finish.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App) {
	// Dashboard
	app.Get("/", handlers.DashboardPage)

	// Liveness probe for infra, outside the API group
	app.Get("/health", handlers.Health)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API consumed by the dashboard and the Go client
	RegisterAPI(app.Group("/api"))
}

// RegisterAPI mounts the JSON endpoints on router. The server mounts it
// under /api; tests can mount it on a bare app.
func RegisterAPI(router fiber.Router) {
	router.Get("/health", handlers.Health)

	// Items
	router.Get("/items", handlers.ItemList)
	router.Get("/items/:id", handlers.ItemView)
	router.Get("/items/:id/prices", handlers.ItemPrices)

	// Categories
	router.Get("/categories", handlers.CategoryList)
	router.Get("/categories/:id", handlers.CategoryView)
	router.Get("/categories/:id/items", handlers.CategoryItems)
}
