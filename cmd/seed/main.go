// Seeds the directory projection from the identity provider's accounts.
// Run after restoring a database or whenever the projection may lag the
// accounts table; upserts are merges, so re-running is safe.
package main

import (
	"context"
	"flag"
	"log"

	"grocery-share/internal/config"
	"grocery-share/internal/database"
	"grocery-share/internal/directory"
	"grocery-share/internal/identity"
	"grocery-share/internal/logging"
	"grocery-share/internal/models"
)

func main() {
	batchSize := flag.Int("batch-size", 1000, "accounts fetched per page")
	flag.Parse()

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

	accounts := identity.NewPostgresAccounts(db)
	dir := directory.NewPostgresStore(db)

	total := 0
	afterUID := ""
	for {
		page, err := accounts.List(ctx, afterUID, *batchSize)
		if err != nil {
			log.Fatalf("list accounts: %v", err)
		}
		if len(page) == 0 {
			break
		}

		seeded := 0
		for _, account := range page {
			ident := &models.Identity{
				UID:         account.UID,
				Email:       &account.Email,
				DisplayName: account.DisplayName,
			}
			// One bad record must not abort the whole batch
			if err := dir.Upsert(ctx, ident); err != nil {
				logger.Warn(ctx, "seed skipped account", "uid", account.UID, "error", err)
				continue
			}
			seeded++
		}
		total += seeded
		afterUID = page[len(page)-1].UID
		logger.Info(ctx, "seeded batch", "batch", len(page), "seeded", seeded, "total", total)
	}

	logger.Info(ctx, "seeding complete", "total", total)
}
