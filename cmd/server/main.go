package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lfsantos/shortener/internal/container"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func buildInjector(options *container.Options) *do.Injector {
	injector := do.New()

	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RepositoryPackage(injector)
	container.ShortenerPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)

	return injector
}

// teardown drains the HTTP server, then shuts container services down and
// finally closes the shared connections they were built on.
func teardown(injector *do.Injector, logger *zap.Logger, server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
		}
	}

	pool := do.MustInvoke[*pgxpool.Pool](injector)
	redisClient := do.MustInvoke[*redis.Client](injector)

	if err := injector.Shutdown(); err != nil {
		logger.Error("service shutdown error", zap.Error(err))
	}

	pool.Close()

	if err := redisClient.Close(); err != nil {
		logger.Error("redis close error", zap.Error(err))
	}
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := buildInjector(options)
		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			router := do.MustInvoke[*chi.Mux](injector)

			// Resolving the API registers every route on the router.
			_ = do.MustInvoke[huma.API](injector)

			server = &http.Server{
				Addr:              fmt.Sprintf("%s:%d", options.Host, options.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("listening",
				zap.String("addr", server.Addr),
				zap.String("base_url", options.BaseURL),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")
			teardown(injector, logger, server)
			logger.Info("shutdown complete")
		})
	})

	cli.Run()
}
