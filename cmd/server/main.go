package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"swiftverify/internal/config"
	"swiftverify/internal/handlers"
	"swiftverify/internal/idcheck"
	"swiftverify/internal/imagestore"
	"swiftverify/internal/router"
	"swiftverify/internal/store"
	"swiftverify/internal/workflow"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	records, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap record store: %v", err)
	}
	log.Printf("record store: %s", cfg.StoreBackend)

	images := imagestore.NewCloudinary(cfg.CloudName, cfg.CloudinaryKey, cfg.CloudinarySecret, cfg.CloudinaryFolder)

	var checker workflow.IDChecker
	if cfg.IDCheckEnabled {
		checker = idcheck.New(cfg.GoogleCredentials, cfg.GeminiAPIKey)
		log.Println("ID document OCR cross-check enabled")
	}

	h := &handlers.Handler{
		Workflow:          workflow.New(images, records, checker),
		Records:           records,
		Images:            images,
		JWTSecret:         []byte(cfg.JWTSecret),
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
		BaseURL:           cfg.PublicBaseURL,
		MaxUploadBytes:    cfg.MaxUploadBytes,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(h, cfg.AllowedOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func buildStore(ctx context.Context, cfg config.Config) (store.RecordStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemStore(), nil
	case config.BackendRedis:
		return store.NewRedisStore(ctx, cfg.RedisURL)
	case config.BackendPostgres:
		return store.NewGormStore(cfg.DatabaseURL)
	default:
		return store.NewFileStore(cfg.DataFile)
	}
}
