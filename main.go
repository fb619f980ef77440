package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/config"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/web"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed the starter catalog on startup")
		debug   = flag.Bool("debug", false, "Enable debug logging")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg, *debug)

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		slog.Error("database connection check failed", "error", err)
		os.Exit(1)
	}

	// Run migration if requested
	if *migrate {
		slog.Info("running database migration")
		if err := database.AutoMigrate(database.DB); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		slog.Info("migration completed")
	}

	// Seed database if requested
	if *seed {
		slog.Info("seeding starter catalog")
		if err := database.SeedData(database.DB); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Create and start web server
	server := web.NewServer()

	go func() {
		if err := server.Start(cfg.App.Port); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	slog.Info("shutting down", "signal", sig.String())

	if err := server.Shutdown(); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// setupLogger installs the default slog handler: colored console output
// in development, JSON in production.
func setupLogger(cfg *config.Config, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.App.IsProduction() {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		})
	}
	slog.SetDefault(slog.New(handler))
}

func showHelp() {
	fmt.Println(`
Kama Ledger - Dofus auction house price tracker

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed the starter catalog on startup
  -debug    Enable debug logging
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration
  go run main.go -migrate

  # Start server with migration and seed
  go run main.go -migrate -seed

For full migration control, use:
  go run cmd/migrate/main.go

For full seed control, use:
  go run cmd/seed/main.go
`)
}
