package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Domenick1991/skyreserva/config"
	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/logger"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"github.com/Domenick1991/skyreserva/internal/seed"
	"github.com/Domenick1991/skyreserva/internal/service/payments"
	"github.com/Domenick1991/skyreserva/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type env struct {
	cfg  *config.Config
	log  *zap.Logger
	pool *pgxpool.Pool
}

func main() {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "admin",
		Short:         "SkyReserva administration tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to config.yaml")

	open := func(ctx context.Context) (*env, func(), error) {
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return nil, nil, err
		}
		zlog, err := logger.New(cfg.App.Env)
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closeFn := func() {
			pool.Close()
			_ = zlog.Sync()
		}
		return &env{cfg: cfg, log: zlog, pool: pool}, closeFn, nil
	}

	rootCmd.AddCommand(migrateCmd(open))
	rootCmd.AddCommand(seedCmd(open))
	rootCmd.AddCommand(paymentCmd(open))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type opener func(ctx context.Context) (*env, func(), error)

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func migrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return migrations.Apply(cmd.Context(), e.pool, e.log)
		},
	}
}

func seedCmd(open opener) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo catalog, flights and users",
		Long:  "Load demo countries, cities, airlines, seat categories, upcoming flights with inventory and users. Safe to run more than once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			if migrate {
				if err := migrations.Apply(cmd.Context(), e.pool, e.log); err != nil {
					return err
				}
			}
			return seed.Load(cmd.Context(), e.pool, e.log)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before seeding")
	return cmd
}

func paymentCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Payment administration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-status <payment-id> <processing|succeeded|rejected>",
		Short: "Override a payment status",
		Long:  "Override a payment status. Only the payment row changes; orders, invoices and tickets are left as they are.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid payment id %q", args[0])
			}
			status := domain.PaymentStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("invalid status %q", args[1])
			}

			e, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			svc := payments.NewPaymentService(payments.Deps{
				Tx:         repository.NewTxManager(e.pool),
				Users:      repository.NewCatalogRepository(e.pool),
				Orders:     repository.NewOrderRepository(e.pool),
				Passengers: repository.NewPassengerRepository(e.pool),
				Cards:      repository.NewCardRepository(e.pool),
				Payments:   repository.NewPaymentRepository(e.pool),
				Invoices:   repository.NewInvoiceRepository(e.pool),
				Tickets:    repository.NewTicketRepository(e.pool),
			}, payments.WithLogger(e.log))

			payment, err := svc.OverrideStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "payment %d is now %s\n", payment.ID, payment.Status)
			return nil
		},
	})
	return cmd
}
