package main

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/database"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/router"
	"github.com/pageza/alchemorsel-recipes/backend/internal/rpc"
	"github.com/pageza/alchemorsel-recipes/backend/internal/server"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
)

func main() {
	log, err := logger.New(config.GetEnvironment().LogMode())
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	rdb, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("redis unavailable, bus transport and rate limiting disabled", "error", err)
		rdb = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var images service.ImageLinker
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Warn("failed to initialize S3, image links are returned as stored", "error", err)
	} else if s3cfg != nil {
		images = service.NewS3ImageLinker(s3cfg, s3cfg.BucketName, cfg.ImageLinkExpiry)
		log.Info("presigning recipe images", "bucket", s3cfg.BucketName)
	}

	ingredients := service.NewIngredientService(db, log)
	recipes := service.NewRecipeService(db, ingredients, images, log)
	dispatcher := rpc.NewServiceDispatcher(ingredients, recipes, log)

	errChan := make(chan error, 2)
	busDone := make(chan struct{})

	if rdb != nil {
		bus := rpc.NewServer(rdb, dispatcher, log, rpc.ServerOptions{
			MaxInFlight:    cfg.RPCMaxInFlight,
			RequestTimeout: cfg.RPCRequestTimeout,
		})
		go func() {
			defer close(busDone)
			if err := bus.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
	} else {
		close(busDone)
	}

	srv := server.New(cfg.HTTPAddr(), router.SetupRouter(cfg, dispatcher, db, rdb, log), log)
	go func() {
		errChan <- srv.Start()
	}()

	failed := false
	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server error", "error", err)
			failed = true
		}
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}
	stop()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error", "error", err)
	}
	select {
	case <-busDone:
	case <-shutdownCtx.Done():
		log.Warn("timed out waiting for in-flight commands")
	}
	closeRedis(rdb, log)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server stopped")
	if failed {
		os.Exit(1)
	}
}

func closeRedis(rdb *redis.Client, log *logger.Logger) {
	if rdb == nil {
		return
	}
	if err := rdb.Close(); err != nil {
		log.Warn("failed to close redis client", "error", err)
	}
}
