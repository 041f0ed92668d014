package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skyreserva/config"
	"github.com/Domenick1991/skyreserva/internal/email"
	"github.com/Domenick1991/skyreserva/internal/kafka"
	"github.com/Domenick1991/skyreserva/internal/logger"
	"github.com/Domenick1991/skyreserva/internal/notification"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"github.com/Domenick1991/skyreserva/internal/service/payments"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Error("worker stopped", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	zlog.Info("worker stopped")
	_ = zlog.Sync()
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	var producer *kafka.Producer
	opts := []payments.Option{
		payments.WithCodeTTL(time.Duration(cfg.Payment.CodeTTLMinutes) * time.Minute),
		payments.WithLogger(zlog),
	}
	if cfg.Kafka.Enabled() {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, zlog)
		defer producer.Close()
		opts = append(opts, payments.WithProducer(producer, cfg.Kafka.PaymentEventsTopic))
	}
	paymentService := payments.NewPaymentService(payments.Deps{
		Tx:         repository.NewTxManager(pool),
		Users:      repository.NewCatalogRepository(pool),
		Orders:     repository.NewOrderRepository(pool),
		Passengers: repository.NewPassengerRepository(pool),
		Cards:      repository.NewCardRepository(pool),
		Payments:   repository.NewPaymentRepository(pool),
		Invoices:   repository.NewInvoiceRepository(pool),
		Tickets:    repository.NewTicketRepository(pool),
	}, opts...)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Kafka.Enabled() {
		sender, err := email.NewSender(cfg.SMTP, zlog)
		if err != nil {
			return fmt.Errorf("init email sender: %w", err)
		}
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
		defer consumer.Close()

		g.Go(func() error {
			zlog.Info("consuming notifications", zap.String("topic", cfg.Kafka.NotificationsTopic))
			err := consumer.Consume(ctx, notification.Handler(sender, zlog))
			if err != nil && !errors.Is(err, context.Canceled) {
				// The sweep keeps running without the consumer.
				zlog.Error("notification consumer stopped", zap.Error(err))
			}
			return nil
		})
	} else {
		zlog.Warn("kafka not configured, notification consumer disabled")
	}

	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(cfg.Worker.ExpirationSweepSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				expired, err := paymentService.ExpireStale(ctx)
				if err != nil {
					zlog.Error("expire payments", zap.Error(err))
					continue
				}
				if len(expired) > 0 {
					zlog.Info("rejected expired payments", zap.Int("count", len(expired)))
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}
