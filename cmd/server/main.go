package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"fashion-unlimited/internal/application/services"
	"fashion-unlimited/internal/application/usecases"
	domainservices "fashion-unlimited/internal/domain/services"
	"fashion-unlimited/internal/infrastructure/api"
	"fashion-unlimited/internal/infrastructure/config"
	"fashion-unlimited/internal/infrastructure/external"
	"fashion-unlimited/internal/infrastructure/logging"
	"fashion-unlimited/internal/infrastructure/metrics"
	infraservices "fashion-unlimited/internal/infrastructure/services"
)

func main() {
	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("config failed")
	}

	log.Info().
		Str("backend", string(cfg.Backend)).
		Str("analyzer_model", cfg.AnalyzerModel).
		Str("synthesizer_model", cfg.SynthesizerModel).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("[boot] configuration loaded")

	// Initialize infrastructure layer
	clientPool := infraservices.NewClientPoolService(cfg.ClientConfig())
	defer clientPool.Close()

	aiService, err := external.NewFittingAIService(clientPool)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create AI service")
	}

	registry := metrics.NewRegistry()

	// Initialize domain layer
	fittingDomainService := domainservices.NewFittingDomainService(aiService, aiService, domainservices.ModelSettings{
		AnalyzerModel:    cfg.AnalyzerModel,
		SynthesizerModel: cfg.SynthesizerModel,
	})

	// Initialize application layer
	tryOnUseCase := usecases.NewTryOnUseCase(fittingDomainService, cfg.RequestTimeout, registry)
	uploadService := services.NewUploadService(cfg.MaxUploadBytes)

	// Initialize API layer
	handler := api.NewTryOnHandler(tryOnUseCase, uploadService, string(cfg.Backend))

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.NewRouter(handler, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout*2)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
