package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/csu-mims/inventory-backend/internal/items"
	"github.com/csu-mims/inventory-backend/internal/seed"
	"github.com/csu-mims/inventory-backend/internal/stockout"
	"github.com/csu-mims/inventory-backend/internal/users"
	"github.com/csu-mims/inventory-backend/pkg/config"
	"github.com/csu-mims/inventory-backend/pkg/db"
	"github.com/csu-mims/inventory-backend/pkg/logger"
	"github.com/csu-mims/inventory-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.App.IsProd() {
		logg.Error(context.Background(), "refusing to seed a prod environment", nil)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	itemRepo := items.NewRepository(dbClient.DB())
	stockoutSvc, err := stockout.NewService(stockout.NewRepository(dbClient.DB()), itemRepo, dbClient, nil)
	if err != nil {
		logg.Error(ctx, "failed to create stock-out service", err)
		os.Exit(1)
	}

	seeder, err := seed.NewSeeder(dbClient.DB(), users.NewRepository(dbClient.DB()), stockoutSvc, logg, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create seeder", err)
		os.Exit(1)
	}

	if err := seeder.Run(ctx); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seeding complete")
}
