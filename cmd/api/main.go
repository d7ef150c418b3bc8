package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/caresure/providerportal/internal/adapters/events"
	"github.com/caresure/providerportal/internal/adapters/history"
	"github.com/caresure/providerportal/internal/adapters/kv"
	"github.com/caresure/providerportal/internal/adapters/providers/tracegen"
	"github.com/caresure/providerportal/internal/adapters/registry"
	"github.com/caresure/providerportal/internal/adapters/storage"
	"github.com/caresure/providerportal/internal/api/handlers"
	"github.com/caresure/providerportal/internal/api/routes"
	"github.com/caresure/providerportal/internal/application/services"
	domainproviders "github.com/caresure/providerportal/internal/domain/providers"
	"github.com/caresure/providerportal/internal/infrastructure/clients/gemini"
	"github.com/caresure/providerportal/internal/infrastructure/clients/postgres"
	redisclient "github.com/caresure/providerportal/internal/infrastructure/clients/redis"
	"github.com/caresure/providerportal/internal/infrastructure/observability"
	"github.com/caresure/providerportal/pkg/config"
)

func main() {
	// Load .env if present; real environments configure via the process env
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := *observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	tracing := false
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			tracing = true
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Select the durable backing for the entity store and history log
	var kvStore domainproviders.KVStore
	switch cfg.Storage.Backend {
	case "memory":
		kvStore = kv.NewMemoryStore()
	case "file":
		fileStore, err := kv.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", cfg.Storage.DataDir).Msg("failed to initialize file storage")
		}
		kvStore = fileStore
	case "redis":
		client, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize Redis client")
		}
		defer client.Close()
		kvStore = kv.NewRedisStore(client, "portal:")
	case "postgres":
		client, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer client.Close()
		kvStore = kv.NewPostgresStore(client)
	default:
		logger.Fatal().Str("backend", cfg.Storage.Backend).Msg("unknown storage backend")
	}
	logger.Info().Str("backend", cfg.Storage.Backend).Msg("storage backend initialized")

	// Event bus: shared via Redis when available, in-process otherwise
	var eventBus domainproviders.EventBus
	if busClient, err := redisclient.NewClient(&cfg.Redis); err == nil {
		defer busClient.Close()
		eventBus = events.NewRedisEventBus(busClient, logger)
		logger.Info().Msg("Redis event bus initialized")
	} else {
		eventBus = events.NewMemoryEventBus()
		logger.Warn().Err(err).Msg("Redis unavailable, using in-process event bus")
	}
	defer eventBus.Close()

	// Trace generation collaborator
	var traceGenerator domainproviders.TraceGenerator
	switch cfg.TextGen.Provider {
	case "gemini":
		client, err := gemini.NewClient(&cfg.TextGen)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable, using mock trace generator")
			traceGenerator = tracegen.NewMockTraceGenerator()
		} else {
			traceGenerator = client
			logger.Info().Str("model", cfg.TextGen.Model).Msg("Gemini trace generator initialized")
		}
	default:
		traceGenerator = tracegen.NewMockTraceGenerator()
	}

	// Stores and registries
	entityStore := storage.NewSnapshotStore(kvStore, logger)
	if err := entityStore.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load entity store")
	}
	historyRepo := history.NewKVHistory(kvStore, logger)
	registryStore := registry.NewSeededRegistry()

	// Services
	verificationService := services.NewVerificationService(
		services.NewVerdictService(registryStore),
		services.NewTraceService(logger),
		traceGenerator,
		entityStore,
		historyRepo,
		eventBus,
		cfg.TextGen.Timeout,
		logger,
	)
	playbackService := services.NewPlaybackService(cfg.Playback.Interval, logger)
	defer playbackService.Close()
	empanelmentService := services.NewEmpanelmentService(entityStore, logger)

	// Handlers and routes
	router := routes.NewRouter(
		handlers.NewProviderHandler(entityStore, historyRepo),
		handlers.NewVerificationHandler(verificationService, playbackService, historyRepo),
		handlers.NewEmpanelmentHandler(empanelmentService),
		handlers.NewCensusHandler(entityStore),
		handlers.NewGeolocationHandler(registryStore),
		handlers.NewSSEHandler(eventBus, logger),
		tracing,
	)

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	if err := entityStore.Flush(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error flushing entity store")
	}

	logger.Info().Msg("server stopped")
}
