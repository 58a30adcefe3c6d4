// Package app initializes and holds long-lived application services,
// acting as a dependency injection container. Clients for the model and
// the index are created once at startup and reused across requests.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vcatlas/vcatlas/internal/api"
	"github.com/vcatlas/vcatlas/internal/config"
	"github.com/vcatlas/vcatlas/internal/fetcher"
	collyfetcher "github.com/vcatlas/vcatlas/internal/fetcher/colly"
	headlessfetcher "github.com/vcatlas/vcatlas/internal/fetcher/headless"
	"github.com/vcatlas/vcatlas/internal/index"
	weaviateindex "github.com/vcatlas/vcatlas/internal/index/weaviate"
	openaiextractor "github.com/vcatlas/vcatlas/internal/llm/openai"
	"github.com/vcatlas/vcatlas/internal/metrics"
	"github.com/vcatlas/vcatlas/internal/pipeline"
)

// App holds all the shared, long-lived services for the application.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	headless *headlessfetcher.Fetcher // nil unless headless fetching is enabled
	idx      index.Index
	server   *api.Server
}

// New creates and initializes an App from the loaded configuration. It
// fails fast if any service cannot be constructed or the index schema
// cannot be ensured.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	metrics.Init()

	f, headless, err := newFetcher(cfg, logger)
	if err != nil {
		return nil, err
	}

	extractor, err := openaiextractor.New(openaiextractor.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init extractor: %w", err)
	}

	idx, err := weaviateindex.New(weaviateindex.Config{
		URL:          cfg.Index.URL,
		APIKey:       cfg.Index.APIKey,
		OpenAIAPIKey: cfg.OpenAI.APIKey,
		Class:        cfg.Index.Class,
	})
	if err != nil {
		return nil, fmt.Errorf("init index client: %w", err)
	}
	if err := idx.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure index schema: %w", err)
	}

	p := pipeline.New(f, extractor, idx, logger)
	server := api.NewServer(p, logger, cfg)

	logger.Info("application services initialized",
		zap.String("index_class", cfg.Index.Class),
		zap.Bool("headless", cfg.Headless.Enabled),
	)

	return &App{
		cfg:      cfg,
		logger:   logger,
		headless: headless,
		idx:      idx,
		server:   server,
	}, nil
}

// newFetcher selects the page fetcher implementation from config.
func newFetcher(cfg config.Config, logger *zap.Logger) (fetcher.Fetcher, *headlessfetcher.Fetcher, error) {
	if cfg.Headless.Enabled {
		hf, err := headlessfetcher.NewChromedp(headlessfetcher.Config{
			MaxParallel:       cfg.Headless.MaxParallel,
			UserAgent:         cfg.HTTP.UserAgent,
			NavigationTimeout: time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init headless fetcher: %w", err)
		}
		logger.Info("using headless page fetcher")
		return hf, hf, nil
	}

	logger.Info("using plain http page fetcher")
	return collyfetcher.New(collyfetcher.Config{
		UserAgent:     cfg.HTTP.UserAgent,
		RespectRobots: cfg.HTTP.RespectRobots,
		Timeout:       cfg.FetchTimeout(),
	}), nil, nil
}

// Run starts the HTTP server and blocks until the context is canceled
// or a termination signal arrives, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("http server started", zap.Int("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	a.logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.logger.Info("shutdown complete")
	return nil
}

// Close releases long-lived resources held by the App.
func (a *App) Close() {
	if a.headless != nil {
		a.headless.Close()
	}
	if err := a.logger.Sync(); err != nil {
		// Best effort; stderr sync fails on some platforms.
		a.logger.Debug("logger sync failed", zap.Error(err))
	}
}
