package main

import (
	"context"
	"encoding/json"
	"flag"
	stdlog "log"
	"os"
	"time"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/database"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

func main() {
	file := flag.String("file", "seed/ingredients.json", "JSON file holding an array of ingredients")
	flag.Parse()

	log, err := logger.New(config.GetEnvironment().LogMode())
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("failed to read seed file", "file", *file, "error", err)
	}
	var ingredients []types.CreateIngredientRequest
	if err := json.Unmarshal(data, &ingredients); err != nil {
		log.Fatal("failed to parse seed file", "file", *file, "error", err)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	inserted, err := service.NewIngredientService(db, log).BulkCreate(ctx, ingredients)
	switch {
	case apperr.IsConflict(err):
		log.Info("all ingredients already seeded", "count", len(ingredients))
	case err != nil:
		log.Fatal("failed to seed ingredients", "error", err)
	default:
		log.Info("seeded ingredients", "requested", len(ingredients), "inserted", len(inserted))
	}
}
