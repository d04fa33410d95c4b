package main

import (
	"context"
	"log"

	"grocery-share/internal/api"
	"grocery-share/internal/config"
	"grocery-share/internal/database"
	"grocery-share/internal/identity"
	"grocery-share/internal/logging"
	"grocery-share/internal/models"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.NewDefault()

	if err := database.Migrate(ctx, cfg.Database); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	notifier := identity.NewNotifier()
	unsubscribe := notifier.Subscribe(func(ident *models.Identity) {
		logger.Info(ctx, "user signed in", "uid", ident.UID)
	})
	defer unsubscribe()

	router := api.SetupRouter(db, cfg, notifier, logger)

	logger.Info(ctx, "server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
