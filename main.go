package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"cta-relay/pkg/api"
	"cta-relay/pkg/clients/crm"
	"cta-relay/pkg/config"
	"cta-relay/pkg/logging"
	"cta-relay/pkg/metrics"
	"cta-relay/pkg/routing"
	"cta-relay/pkg/services"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Intake secrets are resolved once here and handed to the service
	resolver, err := config.NewResolver(os.LookupEnv, cfg.EnvFiles...)
	if err != nil {
		logger.Warn("Some env files could not be read", zap.Strings("files", cfg.EnvFiles), zap.Error(err))
	}
	if _, err := resolver.Entry(); err != nil {
		logger.Warn("Intake is not configured, submissions will fail until it is", zap.Error(err))
	}

	phoneRule, err := routing.ParseSetting(cfg.PhoneRule)
	if err != nil {
		logger.Fatal("Invalid PHONE_RULE", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize services
	relayService := services.NewRelayService(
		crm.NewClient(),
		resolver,
		metrics.New(registry),
		logger,
	)

	gin.SetMode(cfg.GinMode)

	handlers := api.NewHandlers(relayService, phoneRule, logger)
	router := api.NewRouter(handlers, logger, registry, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Requests in flight may still be waiting on the intake service
	ctx, cancel := context.WithTimeout(context.Background(), crm.DefaultTimeout+2*time.Second)
	defer cancel()

	logger.Info("Shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
