package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepmate/interview-coach/internal/ai"
	"github.com/prepmate/interview-coach/internal/config"
	"github.com/prepmate/interview-coach/internal/document"
	"github.com/prepmate/interview-coach/internal/export"
	"github.com/prepmate/interview-coach/internal/interview"
	"github.com/prepmate/interview-coach/internal/logging"
	"github.com/prepmate/interview-coach/internal/ratelimit"
	"github.com/prepmate/interview-coach/internal/server"
)

// Application aggregates shared infrastructure (limiter, AI provider, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis *redis.Client
	http  *http.Server

	sweeper   *ratelimit.MemoryLimiter
	bgCancels []context.CancelFunc
}

// New bootstraps config, logger, rate limiter, AI provider and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	var (
		redisClient *redis.Client
		limiter     ratelimit.Limiter
		sweeper     *ratelimit.MemoryLimiter
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		limiter = ratelimit.NewRedisLimiter(redisClient, logger)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis rate limiter")
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(nil, logger)
		limiter = memLimiter
		sweeper = memLimiter
	}

	provider, err := ai.New(cfg.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("configure AI provider: %w", err)
	}
	logger.Info().Str("provider", provider.Name()).Msg("AI provider configured")

	interviewHandlers := interview.NewHandlers(provider, limiter, cfg, logger)
	extractor := document.NewExtractor(cfg.Upload.MinTextChars, logger)
	documentHandler := document.NewHandler(extractor, cfg.Upload.MaxFileSize, logger)
	exportHandler := export.NewHandler(logger)

	apiServer := server.NewHTTPServer(cfg, logger, interviewHandlers, documentHandler, exportHandler)

	return &Application{
		cfg:       cfg,
		logger:    logger,
		redis:     redisClient,
		http:      apiServer,
		sweeper:   sweeper,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.sweeper != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.sweeper.Run(bgCtx, a.cfg.RateLimit.SweepInterval); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("rate-limit sweeper stopped")
			}
		}()
	}
}
