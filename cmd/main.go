package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"electrotrack/internal/config"
	domainDashboard "electrotrack/internal/domain/dashboard"
	domainLoan "electrotrack/internal/domain/loan"
	"electrotrack/internal/infrastructure/cache"
	"electrotrack/internal/infrastructure/database/postgres"
	"electrotrack/internal/infrastructure/messaging"
	"electrotrack/internal/logger"
	"electrotrack/internal/metrics"
	"electrotrack/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if err := run(cfg); err != nil {
		logger.Error("Application stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run owns every resource it opens; returning unwinds the deferred closes.
func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var statsCache domainDashboard.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		statsCache = cache.NewStatsCache(rdb, cfg.Redis.StatsTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, dashboard stats are not cached")
	}

	var sinks messaging.Fanout
	if cfg.Rabbit.URL != "" {
		p, err := messaging.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		defer func() {
			if err := p.Close(); err != nil {
				logger.Error("Failed to close RabbitMQ connection", zap.Error(err))
			}
		}()
		sinks = append(sinks, p)
	}
	if cfg.MQTT.Broker != "" {
		p, err := messaging.NewMQTTPublisher(messaging.MQTTConfig{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         byte(cfg.MQTT.QoS),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to mqtt broker: %w", err)
		}
		defer p.Close()
		sinks = append(sinks, p)
	}

	var publisher domainLoan.EventPublisher = messaging.Noop{}
	switch len(sinks) {
	case 0:
		logger.Warn("Neither RABBIT_URL nor MQTT_BROKER set, loan events are not published")
	case 1:
		publisher = sinks[0]
	default:
		publisher = sinks
	}

	deps := routes.Dependencies{
		Config:    cfg,
		DB:        db,
		Cache:     statsCache,
		Publisher: publisher,
		Metrics:   metrics.New(),
	}
	services := routes.NewServices(deps)

	if _, err := services.Users.BootstrapAdmin(ctx, cfg.Admin); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	if cfg.Redis.Addr != "" && cfg.Redis.RefreshInterval > 0 {
		go services.Dashboard.StartRefreshJob(ctx, cfg.Redis.RefreshInterval)
	}

	router := routes.SetupRoutes(ctx, deps, services)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	logger.Info("Server exited properly")
	return nil
}
