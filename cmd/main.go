package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/datastore"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/http/api"
	service "github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/app"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/config"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/identity"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/merge"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "service exited", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// defaults -> optional file -> env
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		return fmt.Errorf("log format: %w", err)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore.Close(); err != nil {
			log.Warn(ctx, "closing data store", logger.Error(err))
		}
	}()

	svc, err := newService(cfg, store, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	warmUp(ctx, svc, cfg.Leagues, log)

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("data_source", cfg.DataSource))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore returns the configured data store and whatever must be closed
// with it.
func openStore(ctx context.Context, cfg *config.Config) (datastore.Store, io.Closer, error) {
	switch strings.ToLower(cfg.DataSource) {
	case config.DataSourcePostgres:
		pg, err := datastore.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return pg, pg, nil
	case config.DataSourceFile:
		return datastore.NewFileStore(cfg.DataDir), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %w %q", config.ErrInvalidConfig, config.ErrUnknownDataSource, cfg.DataSource)
	}
}

// engineOptions translates the identity and merge settings.
func engineOptions(cfg *config.Config) (engine.Options, error) {
	opts := engine.DefaultOptions()
	strategy, err := merge.ParseStrategy(cfg.MergeStrategy)
	if err != nil {
		return engine.Options{}, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	opts.Strategy = strategy
	opts.Aliases = identity.NewAliasTable(cfg.Aliases)
	opts.PartitionPlayersByTeam = cfg.PartitionPlayersByTeam
	opts.ReviewMaxDistance = cfg.ReviewMaxDistance
	opts.DropDuplicateRows = cfg.DropDuplicateRows
	return opts, nil
}

func newService(cfg *config.Config, store datastore.Store, log logger.Logger) (*service.Service, error) {
	opts, err := engineOptions(cfg)
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(log),
		service.WithDataStore(store),
		service.WithEngineOptions(opts),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithMaxListLimit(cfg.MaxListLimit),
	), nil
}

func newHandler(cfg *config.Config, svc *service.Service) http.Handler {
	return api.NewServer(svc, svc, api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)).Routes()
}

// warmUp queues a startup refresh for every configured league. Failures are
// logged; the league can still be refreshed on demand.
func warmUp(ctx context.Context, svc *service.Service, leagues []string, log logger.Logger) int {
	queued := 0
	for _, id := range leagues {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, err := svc.RequestRefresh(ctx, id, model.ReasonStartup); err != nil {
			log.Warn(ctx, "startup refresh not queued", logger.String("league", id), logger.Error(err))
			continue
		}
		queued++
	}
	log.Info(ctx, "startup refreshes queued", logger.Int("leagues", queued))
	return queued
}

// startSystemMetricsUpdater samples runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metrics.SampleInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
