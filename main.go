package main

import (
	"log/slog"
	"os"

	"github.com/shangour/URmine149/briefing"
	"github.com/shangour/URmine149/config"
	"github.com/shangour/URmine149/lifecycle"
	"github.com/shangour/URmine149/models"
	"github.com/shangour/URmine149/routes"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer config.CloseDB(db)

	if err := db.AutoMigrate(
		&models.Employee{}, &models.Task{}, &models.Activity{},
		&models.Blocker{}, &models.Screenshot{}, &models.User{},
	); err != nil {
		logger.Error("migration failed", "err", err)
		os.Exit(1)
	}

	engine := lifecycle.NewEngine(db, logger)
	provider := briefing.NewGeminiProvider(cfg.GeminiModel, cfg.GeminiAPIKey)
	briefer := briefing.NewService(provider, logger, cfg.BriefingTimeout)

	r := routes.SetupRouter(db, engine, briefer, []byte(cfg.JWTSecret))

	logger.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
