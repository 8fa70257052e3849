package main

import (
	"DentalSimple/cache"
	"DentalSimple/config"
	"DentalSimple/database"
	"DentalSimple/repositories"
	"DentalSimple/routes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogger(cfg)

	ctx := context.Background()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer closeBackend()

	deps := routes.Dependencies{Backend: backend}
	if cfg.RedisAddress != "" {
		client, err := database.NewRedisClient(ctx, database.LoadRedisConfig(cfg.RedisAddress))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Redis client")
		}
		defer client.Close()

		redisCache, err := cache.NewRedisCache(client)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize cache")
		}
		deps.Cache = redisCache
		deps.Locker = database.NewRedisLocker(client)
	} else {
		log.Info().Msg("REDIS_URL not set, using in-process cache and locks")
		deps.Cache = cache.NewMemoryCache(10 * time.Minute)
		deps.Locker = database.NewLocalLocker()
	}

	handler, err := routes.SetupRoutes(ctx, cfg, deps)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen and serve failed")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	wg.Wait()
	log.Info().Msg("server exited gracefully")
}

func setupLogger(cfg *config.AppConfig) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openBackend opens the configured store and returns a func that releases it.
func openBackend(ctx context.Context, cfg *config.AppConfig) (repositories.Backend, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendLocal:
		store, err := repositories.OpenLocalStore(cfg.LocalStorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close local store")
			}
		}, nil
	default:
		db, err := database.InitDB(ctx, cfg.DBDriver, cfg.DBURL, cfg.IsDevelopment())
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLStore(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}, nil
	}
}
