package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aukra/config"
	"aukra/database"
	"aukra/handlers"
	"aukra/repository"
	"aukra/storage"
	"aukra/worker"
)

// main loads configuration, connects to the database and serves the API
// until SIGINT or SIGTERM. "server migrate" applies migrations and exits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(cfg); err != nil {
			sugar.Fatalw("migrate failed", "error", err)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			sugar.Fatalw("auto-migrate failed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := repository.New(db)

	var images handlers.ImageStorage
	if cfg.StorageEnabled() {
		sc := storage.New(cfg.Storage.URL, cfg.Storage.Key)
		images = sc
		if cfg.Sweeper.Interval > 0 {
			worker.StartImageSweeper(ctx, worker.NewSweeper(store, sc, cfg.Storage.Bucket, cfg.Sweeper.Grace), cfg.Sweeper.Interval)
		}
	} else {
		sugar.Warn("STORAGE_URL or STORAGE_KEY not set, image upload disabled")
	}

	mux := http.NewServeMux()
	handlers.Register(mux, handlers.Deps{
		Menu:       store,
		Dishes:     store,
		Sections:   store,
		Intros:     store,
		Restaurant: store,
		Health:     store,
		Images:     images,
		Bucket:     cfg.Storage.Bucket,
		Admin:      handlers.BasicAuth(cfg.Admin.User, cfg.Admin.PasswordHash),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.RequestLogger(handlers.CORS(cfg.CORS.AllowedOrigins, mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("error stopping server", "error", err)
	}
	sugar.Info("server shutdown complete")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		return z.Build()
	}
	return zap.NewProduction()
}

func runMigrate(cfg *config.Config) error {
	db, err := database.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	fmt.Println("Migrations applied.")
	return nil
}
