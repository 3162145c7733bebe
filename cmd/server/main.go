package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/hcdash/internal/server"
	"github.com/jacksonlee411/hcdash/modules"
	"github.com/jacksonlee411/hcdash/modules/directory"
	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
	"github.com/jacksonlee411/hcdash/pkg/application"
	"github.com/jacksonlee411/hcdash/pkg/authz"
	"github.com/jacksonlee411/hcdash/pkg/configuration"
	"github.com/jacksonlee411/hcdash/pkg/eventbus"
	"github.com/jacksonlee411/hcdash/pkg/logging"
	"github.com/jacksonlee411/hcdash/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	source, err := newSheetSource(conf, logger)
	if err != nil {
		panic(err)
	}

	authorizer, err := authz.NewService(authz.ConfigFrom(conf))
	if err != nil {
		panic(err)
	}

	origins := conf.AllowedOrigins()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Huber: application.NewHub(&application.HuberOptions{
			Logger:      logger,
			CheckOrigin: originChecker(origins),
		}),
	})

	directoryModule := directory.NewModule(&directory.ModuleOptions{
		Source:          source,
		Authorizer:      authorizer,
		RefreshSchedule: conf.Directory.RefreshSchedule,
		DefaultPageSize: conf.Directory.DefaultPageSize,
	})
	if err := modules.Load(app, directoryModule); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	defer directoryModule.Close()

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	if r := directoryModule.Refresher(); r != nil {
		r.Start()
		defer r.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go authorizer.ReloadOnSignal(ctx, hup)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := serverInstance.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newSheetSource builds the configured source, wrapped in the Redis cache
// when SHEET_CACHE_ENABLED is set and Redis answers.
func newSheetSource(conf *configuration.Configuration, logger *logrus.Logger) (sheet.Source, error) {
	source, err := sheet.NewSource(conf.Sheet)
	if err != nil {
		return nil, err
	}
	if !conf.Sheet.CacheEnabled {
		return source, nil
	}

	opts, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		opts = &redis.Options{Addr: conf.RedisURL}
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unavailable, directory sheet cache disabled")
		_ = client.Close()
		return source, nil
	}
	return sheet.NewCachedSource(source, client, conf.Sheet.CacheTTL, logger), nil
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
