// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/api"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/auth"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/cache"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/config"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/database"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/events"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/hours"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/search"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/supervisor"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("driver", cfg.Database.Driver).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Configuration loaded")

	store, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open spot store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing spot store")
		}
	}()

	profile, err := buildKeyProfile(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid extended info key profile")
	}

	results := cache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	engine := search.NewEngine(store, search.Options{
		DefaultLimit:   cfg.Search.DefaultLimit,
		MaxExplicitIDs: cfg.Search.MaxExplicitIDs,
	})
	intervals := hours.NewIntervalStore(store)

	bus := events.NewBus(logging.NewWatermillAdapter())
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	invalidator, err := events.NewInvalidator(bus, results, logging.NewWatermillAdapter())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create cache invalidator")
	}

	var jwtManager *auth.JWTManager
	switch cfg.Security.AuthMode {
	case "jwt":
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		logging.Info().Msg("JWT authentication enabled")
	case "none":
		logging.Warn().Msg("Authentication is DISABLED (auth_mode=none); every caller is treated as an administrator")
	}

	authenticator, err := auth.NewAuthenticator(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authenticator")
	}

	handler := api.New(api.Options{
		Config:  cfg,
		Store:   store,
		Hours:   intervals,
		Engine:  engine,
		Results: results,
		Bus:     bus,
		JWT:     jwtManager,
		Profile: profile,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, auth.NewMiddleware(authenticator)),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs an slog.Logger; the handler bridges it to zerolog.
	tree, err := supervisor.NewTree(slog.New(logging.NewSlogHandler()), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(services.NewInvalidatorService(invalidator))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}

// openStore selects the storage backend from configuration.
func openStore(cfg *config.Config) (database.Store, error) {
	switch cfg.Database.Driver {
	case "memory":
		logging.Warn().Msg("Using in-memory storage; all data is lost on restart")
		return database.NewMemoryStore(), nil
	default:
		return database.New(database.Options{
			Path:    cfg.Database.Path,
			Threads: cfg.Database.Threads,
		})
	}
}

// buildKeyProfile resolves the configured extended-info rules. An empty
// configuration yields the permissive development profile.
func buildKeyProfile(cfg *config.Config) (*models.KeyProfile, error) {
	if len(cfg.ExtendedInfo.Keys) == 0 {
		return models.NewKeyProfile(nil), nil
	}
	rules := make(map[string]models.KeyRule, len(cfg.ExtendedInfo.Keys))
	for key, name := range cfg.ExtendedInfo.Keys {
		rule, err := models.RuleByName(name)
		if err != nil {
			return nil, err
		}
		rules[key] = rule
	}
	return models.NewKeyProfile(rules), nil
}
