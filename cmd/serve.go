package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"shortener/internal/api"
	"shortener/internal/api/handler/linkhandler"
	"shortener/internal/api/handler/uihandler"
	"shortener/internal/config"
	"shortener/internal/links"
	"shortener/internal/shortener"
	"shortener/internal/worker"
	"shortener/pkg/cache"
	"shortener/pkg/logger"
	"shortener/pkg/metrics"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// getCache returns the redis link cache, or a no-op cache when no address is
// configured, along with a cleanup function.
func getCache(ctx context.Context, cfg *config.Config) (cache.LinkCache, func()) {
	if cfg.Cache.Addr == "" {
		logger.Info(ctx, "link cache is disabled")

		return cache.New(nil, 0), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn(ctx, "redis is not reachable, links will be read from postgres until it is", zap.Error(err))
	}

	return cache.New(rdb, cfg.Cache.TTL), func() {
		logger.Info(ctx, "closing redis client...")
		if err := rdb.Close(); err != nil {
			logger.Warn(ctx, "could not close redis client", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			linkCache, closeCache := getCache(ctx, cfg)
			defer closeCache()

			mp, err := metrics.NewPrometheusProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			ins, err := metrics.NewInstruments(mp)
			if err != nil {
				logger.Fatal(ctx, "could not create instruments", zap.Error(err))
			}

			linkSvc, err := links.New(links.Deps{
				Storage:     strg,
				Cache:       linkCache,
				Instruments: ins,
			}, links.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not create link service", zap.Error(err))
			}

			jobs, err := worker.Start(ctx, strg.Pool, worker.Deps{
				Links:       strg,
				Instruments: ins,
			}, worker.Options{MaxWorkers: cfg.Worker.MaxWorkers})
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps: linkhandler.Deps{Links: linkSvc},
				UI:   uihandler.Deps{Shortener: shortener.New(getShortClient(cfg))},
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(shutdownCtx, "stopping workers...")
			if err := jobs.Stop(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop workers", zap.Error(err))
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not shut down meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
