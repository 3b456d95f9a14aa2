// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Soumyadip-03/NFTGenie/internal/api"
	"github.com/Soumyadip-03/NFTGenie/internal/config"
	"github.com/Soumyadip-03/NFTGenie/internal/database"
	"github.com/Soumyadip-03/NFTGenie/internal/logging"
	"github.com/Soumyadip-03/NFTGenie/internal/middleware"
	"github.com/Soumyadip-03/NFTGenie/internal/supervisor"
	"github.com/Soumyadip-03/NFTGenie/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("database", cfg.Database.Host).
		Bool("redis", cfg.Redis.Enabled).
		Str("model_store", cfg.Recommend.ModelStore).
		Msg("Starting NFTGenie")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg.Database, logging.WithComponent("database"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer store.Close()
	logging.Info().Msg("Database connection established")

	memo := initMemo(ctx, cfg)
	defer func() {
		if err := memo.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing memo")
		}
	}()

	rc, err := initRecommend(cfg, store, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	defer rc.Close()

	tree := supervisor.NewTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.DefaultTreeConfig(),
	)

	recommendSvc := services.NewRecommendService(rc.Engine, memo, services.RecommendServiceConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		TrainInterval:  cfg.Recommend.TrainInterval,
	}, logging.Logger())
	interactionSvc := services.NewInteractionService(rc.Engine, cfg.Recommend.UpdateQueueSize, logging.Logger())

	perf := middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowThreshold)
	handler := api.NewHandler(rc.Engine, store, memo, logging.Logger(),
		api.WithInteractionQueue(interactionSvc),
		api.WithTrainTrigger(recommendSvc),
		api.WithPerformanceMonitor(perf),
		api.WithSettings(api.Settings{
			MemoTTL:         cfg.Redis.MemoTTL,
			RetrainThrottle: cfg.Recommend.RetrainThrottle,
			DiversityLambda: cfg.Recommend.DiversityLambda,
		}),
	)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Server)), cfg.Server.Timeout)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	tree.AddDataService(recommendSvc)
	tree.AddMessagingService(interactionSvc)
	tree.AddAPIService(services.NewHTTPServerService(server, tree.Config().ShutdownTimeout, logging.Logger()))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	unstopped, err := tree.UnstoppedServiceReport()
	if err != nil {
		logging.Warn().Err(err).Msg("Could not collect unstopped services")
	}
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("NFTGenie stopped")
}
