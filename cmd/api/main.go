package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/ringtrail/internal/config"
	"github.com/jwebster45206/ringtrail/internal/handlers"
	"github.com/jwebster45206/ringtrail/internal/logger"
	"github.com/jwebster45206/ringtrail/internal/storage"
	"github.com/jwebster45206/ringtrail/pkg/encounter"
	"github.com/jwebster45206/ringtrail/pkg/engine"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Ringtrail API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.RunTTL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	// Content errors are programmer errors: refuse to boot on them
	// instead of failing mid-tick.
	j, err := store.GetJourney(storageCtx)
	if err != nil {
		log.Error("Failed to load journey content", "error", err)
		os.Exit(1)
	}
	catalog := encounter.DefaultCatalog(j)
	towns := encounter.DefaultTowns()
	if err := catalog.Validate(); err != nil {
		log.Error("Encounter catalog invalid", "error", err)
		os.Exit(1)
	}
	if err := j.Validate(catalog.Has); err != nil {
		log.Error("Journey content invalid", "error", err)
		os.Exit(1)
	}
	if err := encounter.ValidateTowns(towns, j); err != nil {
		log.Error("Town catalog invalid", "error", err)
		os.Exit(1)
	}

	eng := engine.New(j, catalog, towns, log)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	runsHandler := handlers.NewRunsHandler(eng, store, log)
	mux.Handle("/v1/runs", runsHandler)
	mux.Handle("/v1/runs/", runsHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}
