package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asadintwala/jobspy-scraper-api/internal/api/scraperapi"
	"github.com/asadintwala/jobspy-scraper-api/internal/audit"
	"github.com/asadintwala/jobspy-scraper-api/internal/config"
	"github.com/asadintwala/jobspy-scraper-api/internal/logger"
	"github.com/asadintwala/jobspy-scraper-api/internal/search"
	"github.com/asadintwala/jobspy-scraper-api/internal/server"
	"github.com/asadintwala/jobspy-scraper-api/internal/storage/postgres"
	"github.com/asadintwala/jobspy-scraper-api/internal/storage/redis"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting job scraper API",
		zap.String("log_level", cfg.LogLevel),
		zap.String("addr", cfg.ServerAddr),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	scraperClient := scraperapi.New(cfg.ScraperBaseURL, cfg.ScraperTimeout, log)
	log.Info("scraper service client created", zap.String("base_url", cfg.ScraperBaseURL))

	searchSvc := search.NewService(scraperClient, log)
	auditor := audit.New(store, log)
	handler := server.NewHandler(cfg, searchSvc, store, cache, log)
	router := server.New(cfg, handler, cache, auditor, log)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		log.Info("server is running", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped with error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("received shutdown signal", zap.String("signal", sig.String()))

	log.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
