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

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/db"
	"github.com/prehab-dev/prehab/internal/auth"
	"github.com/prehab-dev/prehab/internal/config"
	"github.com/prehab-dev/prehab/internal/handlers"
	"github.com/prehab-dev/prehab/internal/logger"
	"github.com/prehab-dev/prehab/internal/repository"
	"github.com/prehab-dev/prehab/internal/router"
	"github.com/prehab-dev/prehab/internal/services"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.AppEnv, os.Stdout)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", cfg.AppEnv).Msg("starting prehab")

	gdb, err := db.ConnectDatabase(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.MigrateDatabase(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure token issuer")
	}

	store := repository.NewStore(gdb)
	origins := types.AllowedOrigins(cfg.CORS.ClientURL, cfg.CORS.AllowedOrigins)
	hub := handlers.NewHub(origins, store.Exercises, log)

	sinks, redisClient := exportSinks(cfg.Export, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	accounts := services.NewAccountService(store, tokens, auth.NewPasswordHasher(cfg.Auth.BcryptCost), hub, log)
	exercises := services.NewExerciseService(store, hub)
	engagements := services.NewEngagementService(store, hub)
	export := services.NewExportService(store, log, sinks...)

	r := router.NewRouter(router.Dependencies{
		Auth:           handlers.NewAuthHandler(accounts),
		Exercises:      handlers.NewExerciseHandler(exercises, hub),
		Engagements:    handlers.NewEngagementHandler(engagements),
		Export:         handlers.NewExportHandler(export),
		Health:         handlers.NewHealthHandler(gdb),
		Resolver:       tokens,
		Users:          store.Users,
		AllowedOrigins: origins,
		Log:            log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("server stopped")
}

// exportSinks builds the configured snapshot sinks. An unreachable Redis is
// logged and skipped so the API still starts.
func exportSinks(cfg config.Export, log zerolog.Logger) ([]services.SnapshotSink, *redis.Client) {
	var (
		sinks  []services.SnapshotSink
		client *redis.Client
	)

	if cfg.RedisAddr != "" {
		var err error
		client, err = services.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis export sink disabled")
		} else {
			sinks = append(sinks, services.NewRedisSink(client))
		}
	}

	if cfg.URL != "" {
		sinks = append(sinks, services.NewHTTPSink(cfg.URL, cfg.Timeout))
	}

	return sinks, client
}
