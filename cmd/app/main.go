package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skyreserva/api"
	"github.com/Domenick1991/skyreserva/config"
	"github.com/Domenick1991/skyreserva/internal/bootstrap"
	"github.com/Domenick1991/skyreserva/internal/cache"
	"github.com/Domenick1991/skyreserva/internal/email"
	"github.com/Domenick1991/skyreserva/internal/kafka"
	"github.com/Domenick1991/skyreserva/internal/logger"
	"github.com/Domenick1991/skyreserva/internal/notification"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"github.com/Domenick1991/skyreserva/internal/service/billing"
	"github.com/Domenick1991/skyreserva/internal/service/cards"
	"github.com/Domenick1991/skyreserva/internal/service/flights"
	"github.com/Domenick1991/skyreserva/internal/service/orders"
	"github.com/Domenick1991/skyreserva/internal/service/passengers"
	"github.com/Domenick1991/skyreserva/internal/service/payments"
	"github.com/Domenick1991/skyreserva/internal/service/reservations"
	"github.com/Domenick1991/skyreserva/internal/tracing"
	"github.com/Domenick1991/skyreserva/migrations"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
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
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := tracing.Init(ctx, cfg.App.Name, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			zlog.Fatal("init tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("parse database config", zap.Error(err))
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool, zlog); err != nil {
		zlog.Fatal("apply migrations", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	defer redisCache.Close()

	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, zlog)
		defer producer.Close()
	}

	notifier, err := newNotifier(cfg, producer, zlog)
	if err != nil {
		zlog.Fatal("init notifier", zap.Error(err))
	}

	tx := repository.NewTxManager(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	cardRepo := repository.NewCardRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	flightService := flights.NewFlightService(flightRepo, catalogRepo,
		flights.WithCache(redisCache),
		flights.WithLogger(zlog),
	)
	orderService := orders.NewOrderService(tx, catalogRepo, orderRepo, reservationRepo, passengerRepo, flightRepo,
		orders.WithCache(redisCache),
		orders.WithLogger(zlog),
	)
	reservationService := reservations.NewReservationService(tx, orderRepo, reservationRepo, passengerRepo, flightRepo,
		reservations.WithCache(redisCache),
		reservations.WithLogger(zlog),
	)
	passengerService := passengers.NewPassengerService(tx, orderRepo, reservationRepo, passengerRepo,
		passengers.WithLogger(zlog),
	)
	cardService := cards.NewCardService(catalogRepo, cardRepo, cards.WithLogger(zlog))
	paymentOpts := []payments.Option{
		payments.WithNotifier(notifier),
		payments.WithAttemptLimiter(redisCache),
		payments.WithCodeTTL(time.Duration(cfg.Payment.CodeTTLMinutes) * time.Minute),
		payments.WithMaxAttempts(cfg.Payment.MaxCodeAttempts),
		payments.WithExposeCode(cfg.ExposeVerificationCode()),
		payments.WithLogger(zlog),
	}
	if producer != nil {
		paymentOpts = append(paymentOpts, payments.WithProducer(producer, cfg.Kafka.PaymentEventsTopic))
	}
	paymentService := payments.NewPaymentService(payments.Deps{
		Tx:         tx,
		Users:      catalogRepo,
		Orders:     orderRepo,
		Passengers: passengerRepo,
		Cards:      cardRepo,
		Payments:   paymentRepo,
		Invoices:   invoiceRepo,
		Tickets:    ticketRepo,
	}, paymentOpts...)
	billingService := billing.NewBillingService(invoiceRepo, ticketRepo, zlog)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	admin := api.AdminOnly(cfg.Admin.Token)
	router := api.NewRouter(api.Handlers{
		Flights:      api.NewFlightHandler(flightService, zlog),
		Orders:       api.NewOrderHandler(orderService, admin, zlog),
		Reservations: api.NewReservationHandler(reservationService, zlog),
		Passengers:   api.NewPassengerHandler(passengerService, zlog),
		Cards:        api.NewCardHandler(cardService, zlog),
		Payments:     api.NewPaymentHandler(paymentService, admin, zlog),
		Billing:      api.NewBillingHandler(billingService, zlog),
	}, readinessChecks(pool, redisCache, producer), zlog)

	zlog.Info("starting skyreserva", zap.String("env", cfg.App.Env))
	if err := bootstrap.Run(ctx, cfg, router, zlog); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}

// newNotifier hands codes to the worker over Kafka when brokers are configured and
// sends them by SMTP directly otherwise.
func newNotifier(cfg *config.Config, producer *kafka.Producer, log *zap.Logger) (payments.Notifier, error) {
	if producer != nil {
		log.Info("verification codes go through kafka", zap.String("topic", cfg.Kafka.NotificationsTopic))
		return notification.NewKafkaNotifier(producer, cfg.Kafka.NotificationsTopic), nil
	}
	sender, err := email.NewSender(cfg.SMTP, log)
	if err != nil {
		return nil, err
	}
	return sender, nil
}

func readinessChecks(pool *pgxpool.Pool, redisCache *cache.RedisCache, producer *kafka.Producer) map[string]api.ReadinessCheck {
	checks := map[string]api.ReadinessCheck{
		"postgres": pool.Ping,
		"redis":    redisCache.Ping,
	}
	if producer != nil {
		checks["kafka"] = producer.CheckConnection
	}
	return checks
}
