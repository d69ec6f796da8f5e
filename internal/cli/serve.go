package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unimate/internal/config"
	"unimate/internal/conversations"
	"unimate/internal/db"
	"unimate/internal/handlers"
	"unimate/internal/logging"
	"unimate/internal/lookup"
	"unimate/internal/observability"
	"unimate/internal/rabbitmq"
	"unimate/internal/ratelimit"
	"unimate/internal/repositories"
	"unimate/internal/session"
	"unimate/internal/telemetry"
	"unimate/internal/ws"
)

const serviceName = "unimate"

// NewServeCommand starts the HTTP server.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	for key, state := range cfg.Diagnostics() {
		if state != "SET" {
			logger.Warn("backend setting missing", zap.String("key", key))
		}
	}

	shutdownTracer, err := telemetry.InitTracer(ctx, serviceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(flushCtx)
	}()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBBootstrap, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
	defer publisher.Close()
	observability.SetPublisher(publisher)
	logger.Info("event publisher ready",
		zap.String("mode", rabbitmq.PublisherMode(publisher)),
		zap.String("noop_reason", rabbitmq.PublisherNoopReason(publisher)),
	)
	audit := telemetry.NewAuditEmitter(publisher, "audit."+serviceName, serviceName, cfg.Env, logger)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	profileRepo := repositories.NewProfileRepo(database)
	contractRepo := repositories.NewContractRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	conversationRepo := repositories.NewConversationRepo(database)

	limiter, closeLimiter := newLimiter(cfg, logger)
	defer closeLimiter()

	router := handlers.NewRouter(handlers.Deps{
		ServiceName:    serviceName,
		Logger:         logger,
		Authenticator:  newAuthenticator(cfg, httpClient, logger),
		Profiles:       profileRepo,
		Contracts:      contractRepo,
		Messages:       messageRepo,
		Conversations:  conversations.NewService(conversationRepo, loc, logger),
		Locations:      lookup.NewLocationClient(cfg.NominatimURL, httpClient, logger),
		Universities:   lookup.NewUniversityClient(cfg.UniversitiesURL, httpClient, logger),
		Hub:            ws.NewHub(logger),
		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        limiter,
		Audit:          audit,
		Diagnostics:    cfg.Diagnostics,
		Debug:          cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newAuthenticator(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) session.Authenticator {
	if cfg.SupabaseJWTSecret != "" {
		logger.Info("verifying access tokens locally")
		return session.NewJWTAuthenticator(cfg.SupabaseJWTSecret)
	}
	logger.Info("verifying access tokens against the auth service", zap.String("url", cfg.SupabaseURL))
	return session.NewRemoteAuthenticator(cfg.SupabaseURL, cfg.SupabaseAnonKey, httpClient)
}

func newLimiter(cfg *config.Config, logger *zap.Logger) (ratelimit.Limiter, func()) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		logger.Info("rate limiting through redis", zap.String("addr", cfg.RedisAddr))
		return ratelimit.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, serviceName+":ratelimit"), func() { _ = rdb.Close() }
	}
	l := ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, time.Minute)
	return l, l.Stop
}
