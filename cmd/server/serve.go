package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paymentapi/config"
	"paymentapi/internal/database"
	"paymentapi/internal/events"
	"paymentapi/internal/router"
	"paymentapi/internal/ws"
	"paymentapi/pkg/logging"
	"paymentapi/pkg/payment"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Server.Debug)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logger.Error("database connection failed", zap.Error(err))
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}

	gateway, err := newGateway(cfg, logger)
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	publishers := events.Fanout{hub}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.StatusTopic, logger.With(zap.String("component", "kafka")))
		defer kp.Close()
		publishers = append(publishers, kp)
		logger.Info("status events published to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.StatusTopic))
	}

	engine := router.Setup(cfg, router.Deps{
		DB:        db,
		Gateway:   gateway,
		Hub:       hub,
		Publisher: publishers,
		Logger:    logger,
	})
	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router.WithCORS(&cfg.Server, engine),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Error("listen failed", zap.Error(err))
		return err
	case <-quit:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newGateway picks Paystack, or the stub when no key is configured outside production.
func newGateway(cfg *config.Config, logger *zap.Logger) (payment.Gateway, error) {
	if cfg.Paystack.SecretKey != "" {
		return payment.NewPaystackProvider(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, cfg.Paystack.Timeout,
			logger.With(zap.String("component", "paystack"))), nil
	}
	if cfg.IsProduction() {
		return nil, errors.New("PAYSTACK_SECRET_KEY is required in production")
	}
	logger.Warn("PAYSTACK_SECRET_KEY not set; using stub gateway")
	return &payment.StubProvider{}, nil
}
