package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"meetingmind/internal/api/server"
	"meetingmind/internal/api/v1/handlers"
	v1routes "meetingmind/internal/api/v1/routes"
	"meetingmind/internal/api/v1/services"
	"meetingmind/internal/app/api/assemblyai"
	"meetingmind/internal/app/api/gemini"
	"meetingmind/internal/app/api/openai"
	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/logging"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/ratelimit"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/repository"
	"meetingmind/internal/app/repository/migrate"
	"meetingmind/internal/app/repository/pg"
	"meetingmind/internal/app/repository/sqlite"
	"meetingmind/internal/app/retry"
	"meetingmind/internal/app/storage"
	"meetingmind/internal/config"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.NewLogger(!cfg.IsProduction())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// OpenStore connects to the configured database without migrating it
func OpenStore(cfg *config.Config) (*repository.SQLStore, error) {
	switch cfg.Database.Driver {
	case string(repository.Postgres):
		return pg.NewStore(cfg.Database.URL)
	case string(repository.SQLite):
		return sqlite.NewStore(cfg.Database.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func provideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.SQLStore, func(), error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("database is unreachable: %w", err)
	}
	if _, err := migrate.Up(ctx, store.DB(), store.Dialect(), logger); err != nil {
		store.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

func provideObjectStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.ObjectStorage, error) {
	objects, err := storage.NewMinioStorage(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return objects, nil
}

// provideRedis returns nil when no REDIS_URL is configured
func provideRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Info("Redis not configured, rate limits and realtime stay process-local")
		return nil, func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis is unreachable: %w", err)
	}
	return client, func() { client.Close() }, nil
}

func provideMemoryBroker(m *metrics.Metrics) *realtime.MemoryBroker {
	broker := realtime.NewMemoryBroker()
	broker.OnCountChange = func(n int) {
		m.RealtimeSubscribers.Set(float64(n))
	}
	return broker
}

// provideRelay returns nil without Redis
func provideRelay(client *redis.Client, cfg *config.Config, local *realtime.MemoryBroker, logger *zap.Logger) *realtime.RedisBroker {
	if client == nil {
		return nil
	}
	return realtime.NewRedisBroker(client, cfg.Redis.Channel, local, logger)
}

func provideBroker(local *realtime.MemoryBroker, relay *realtime.RedisBroker) realtime.Broker {
	if relay != nil {
		return relay
	}
	return local
}

func provideRateLimits(cfg *config.Config, client *redis.Client, logger *zap.Logger) *ratelimit.Registry {
	if client == nil {
		return ratelimit.NewRegistry(cfg.RateLimits, nil, logger)
	}
	return ratelimit.NewRegistry(cfg.RateLimits, client, logger)
}

func provideClock() clock.Clock {
	return clock.Real{}
}

func provideRetry(cfg *config.Config) retry.Options {
	return retry.Options{
		MaxRetries:        cfg.Providers.Retries,
		InitialDelay:      cfg.Providers.RetryDelay,
		MaxDelay:          retry.DefaultMaxDelay,
		BackoffMultiplier: retry.DefaultBackoffMultiplier,
		ShouldRetry:       retry.IsTransient,
	}
}

// provideTranscriber returns nil when no AssemblyAI key is set
func provideTranscriber(cfg *config.Config, opts retry.Options, logger *zap.Logger) provider.Transcriber {
	if !cfg.TranscriptionEnabled() {
		logger.Warn("ASSEMBLYAI_API_KEY not set, transcription disabled")
		return nil
	}
	return assemblyai.NewClient(assemblyai.Config{
		APIKey:  cfg.Keys.AssemblyAI,
		BaseURL: cfg.Providers.AssemblyAIBaseURL,
		Timeout: cfg.Providers.Timeout,
		Retry:   opts,
	}, logger)
}

// provideLanguageModel returns nil when the selected provider has no key
func provideLanguageModel(ctx context.Context, cfg *config.Config, opts retry.Options, logger *zap.Logger) (provider.LanguageModel, error) {
	if !cfg.SummarizationEnabled() {
		logger.Warn("No language model key set, summarization and translation disabled",
			zap.String("llm_provider", cfg.Providers.LLMProvider))
		return nil, nil
	}
	if cfg.Providers.LLMProvider == "gemini" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.Keys.Gemini,
			Model:  cfg.Providers.GeminiModel,
			Retry:  opts,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return openai.NewClient(openai.Config{
		APIKey:  cfg.Keys.OpenAI,
		BaseURL: cfg.Providers.OpenAIBaseURL,
		Model:   cfg.Providers.OpenAIModel,
		Retry:   opts,
	}, logger), nil
}

func provideMeetingService(store repository.Store, objects storage.ObjectStorage, events *services.EventPublisher, cfg *config.Config, clk clock.Clock, logger *zap.Logger) services.MeetingService {
	return services.NewMeetingService(store, objects, events, services.UploadSettings{
		MaxUploadMB:  cfg.Server.MaxUploadMB,
		PresignedTTL: cfg.Storage.PresignedTTL,
	}, clk, logger)
}

func provideTranscriptionService(
	store repository.Store,
	transcriber provider.Transcriber,
	objects storage.ObjectStorage,
	summaries services.SummaryService,
	events *services.EventPublisher,
	m *metrics.Metrics,
	cfg *config.Config,
	clk clock.Clock,
	logger *zap.Logger,
) services.TranscriptionService {
	if cfg.Webhook.Secret == "" {
		logger.Warn("WEBHOOK_SECRET is not set; transcription callbacks are accepted without authentication")
	}
	return services.NewTranscriptionService(store, transcriber, objects, summaries, events, m, services.TranscriptionSettings{
		PublicBaseURL: cfg.Server.PublicBaseURL,
		WebhookSecret: cfg.Webhook.Secret,
		PresignedTTL:  cfg.Storage.PresignedTTL,
	}, services.Async, clk, logger)
}

func provideShareService(store repository.Store, cfg *config.Config, clk clock.Clock, logger *zap.Logger) services.ShareService {
	return services.NewShareService(store, cfg.Server.PublicBaseURL, clk, logger)
}

func provideConfigService(cfg *config.Config, m *metrics.Metrics) services.ConfigService {
	return services.NewConfigService(cfg, m, true)
}

func provideRealtimeHandler(broker realtime.Broker, logger *zap.Logger, cfg *config.Config) *handlers.RealtimeHandler {
	return handlers.NewRealtimeHandler(broker, realtime.DefaultConnectionOptions().HeartbeatInterval, cfg.Server.AllowedOrigins, logger)
}

func provideServer(cfg *config.Config, container *v1routes.ServiceContainer, store *repository.SQLStore, logger *zap.Logger) *server.Server {
	return server.NewServer(cfg.Server, container, store, logger)
}

// Application is the assembled API server and its background workers
type Application struct {
	Config *config.Config
	Logger *zap.Logger
	Server *server.Server
	Limits *ratelimit.Registry
	// Relay is nil without Redis
	Relay *realtime.RedisBroker
}

// NewApplication groups the long-running components
func NewApplication(cfg *config.Config, logger *zap.Logger, srv *server.Server, limits *ratelimit.Registry, relay *realtime.RedisBroker) *Application {
	return &Application{Config: cfg, Logger: logger, Server: srv, Limits: limits, Relay: relay}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down gracefully
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.Limits.Start(ctx, time.Minute)
	defer a.Limits.Stop()

	if a.Relay != nil {
		go func() {
			if err := a.Relay.Run(ctx); err != nil && ctx.Err() == nil {
				a.Logger.Error("Realtime relay stopped", zap.Error(err))
			}
		}()
	}

	var serveErr error
	select {
	case err, ok := <-a.Server.Start():
		if ok {
			serveErr = err
		}
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()
	if err := a.Server.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}
