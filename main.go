package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"golf-atlas/api"
	"golf-atlas/config"
	"golf-atlas/notify"
	"golf-atlas/scheduler"
	"golf-atlas/services"
	"golf-atlas/source"
	"golf-atlas/storage"
	"golf-atlas/utils"
	"golf-atlas/web"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Golf Atlas starting ===")
	logger.Info("Config — source: %s | timeout: %v | sinks: %v | overrides: %v",
		cfg.SourceURL, cfg.FetchTimeout, cfg.StorageDrivers, cfg.AllowSourceOverride)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sinks, err := storage.OpenSinks(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage sinks: %v", err)
		os.Exit(1)
	}
	defer sinks.Close()

	hub := notify.NewHub(logger)
	fetcher := source.NewFetcher(cfg.FetchTimeout, logger)
	loader := services.NewLoader(fetcher, logger, cfg.FetchTimeout).
		WithSink(sinks).
		WithNotifier(hub)

	registry, err := services.NewRegistry(cfg.SourceURL, loader, cfg.AllowSourceOverride, cfg.CatalogCacheSize)
	if err != nil {
		logger.Error("Failed to create catalog registry: %v", err)
		os.Exit(1)
	}
	insights := services.NewInsightService(logger)

	// The first load blocks startup. On failure the server still comes up
	// and answers every data request with the load error until a reload works.
	snap, err := registry.Default().Reload(ctx, "")
	if err != nil {
		logger.Error("%s", services.UserMessage(err))
	} else if logger.DebugEnabled() {
		insights.Print(insights.Generate(snap.Courses))
	}

	sched := scheduler.New(registry.Default(), logger)
	if cfg.RefreshCron != "" {
		if err := sched.Every(cfg.RefreshCron); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
	}
	sched.Start(ctx, cfg.WatchSource)
	defer sched.Stop()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Debug {
		router.Use(gin.Logger())
	}
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/", web.Index)
	router.GET("/ws", notify.WSHandler(hub))
	api.RegisterHealth(router, registry, hub)

	handler := api.NewHandler(registry, insights)
	handler.FeaturedLimit = cfg.FeaturedLimit
	handler.SuggestLimit = cfg.SuggestLimit
	handler.ReloadTimeout = cfg.FetchTimeout + 5*time.Second
	handler.RegisterRoutes(router.Group("/api"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error: %v", err)
	}
	if err := registry.Flush(shutdownCtx); err != nil {
		logger.Warn("Pending snapshot writes not finished: %v", err)
	}
	logger.Info("Server stopped")
}
