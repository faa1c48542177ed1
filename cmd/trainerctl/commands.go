package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"trainerhub/internal/config"
	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/ledger"
	"trainerhub/internal/modules/feedback"
	"trainerhub/internal/modules/payout"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/pkg/logger"
	"trainerhub/internal/repository"
	"trainerhub/internal/seed"
)

type env struct {
	cfg *config.Config
	log *slog.Logger
	db  *gorm.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	l, err := logger.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &env{cfg: cfg, log: l, db: db}, nil
}

func (e *env) settings() *settings.Service {
	return settings.NewService(repository.NewSettingsRepository(e.db), settings.Defaults(e.cfg.DefaultCommissionRate))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			if err := database.Migrate(e.db); err != nil {
				return err
			}
			e.log.Info("migration completed")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, trainers and content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			if e.cfg.IsProd() {
				return errors.New("refusing to seed a production database")
			}
			if err := database.Migrate(e.db); err != nil {
				return err
			}
			sum, err := seed.Run(cmd.Context(), e.db, opts)
			if err != nil {
				return err
			}
			return printJSON(sum)
		},
	}
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "delete existing rows first")
	cmd.Flags().StringVar(&opts.Password, "password", "password123", "password for every seeded account")
	return cmd
}

func newPayoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payouts",
		Short: "Inspect and batch pending trainer payouts",
	}

	var minAmount float64
	pending := &cobra.Command{
		Use:   "pending",
		Short: "List pending payouts grouped by trainer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			svc := payout.NewService(repository.NewPayoutRepository(e.db), repository.NewTrainerRepository(e.db), e.settings())
			rows, err := svc.ListPending(cmd.Context(), minAmount)
			if err != nil {
				return err
			}
			return printJSON(rows)
		},
	}
	pending.Flags().Float64Var(&minAmount, "min-amount", 0, "hide trainers owed less than this")

	var adminEmail string
	var ids []int64
	batch := &cobra.Command{
		Use:   "batch",
		Short: "Group pending payouts into a new batch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			admin, err := repository.NewUserRepository(e.db).GetByEmail(cmd.Context(), adminEmail)
			if err != nil {
				return fmt.Errorf("admin %q: %w", adminEmail, err)
			}
			if admin.Role != domain.RoleAdmin {
				return fmt.Errorf("%s is not an admin", adminEmail)
			}
			svc := payout.NewService(repository.NewPayoutRepository(e.db), repository.NewTrainerRepository(e.db), e.settings())
			b, err := svc.CreateBatch(cmd.Context(), admin.ID, ids)
			if err != nil {
				return err
			}
			e.log.Info("payout batch created",
				slog.Int64("batch_id", b.ID),
				slog.Int("payouts", b.PayoutCount),
				slog.Float64("total_net", b.TotalNet),
			)
			return printJSON(b)
		},
	}
	batch.Flags().StringVar(&adminEmail, "admin-email", "", "admin account recorded as batch creator")
	batch.Flags().Int64SliceVar(&ids, "ids", nil, "payout ids; all eligible payouts when empty")
	_ = batch.MarkFlagRequired("admin-email")

	cmd.AddCommand(pending, batch)
	return cmd
}

func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Feedback link maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired feedback links that were never used",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			svc := feedback.NewService(
				repository.NewFeedbackRepository(e.db),
				repository.NewBookingRepository(e.db),
				repository.NewTrainerRepository(e.db),
				e.settings(),
			)
			n, err := svc.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			e.log.Info("expired feedback links purged", slog.Int64("deleted", n))
			return nil
		},
	})
	return cmd
}

func newReportCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print platform revenue for a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			end := time.Now().UTC()
			if to != "" {
				if end, err = time.Parse("2006-01-02", to); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				end = end.AddDate(0, 0, 1)
			}
			start := end.AddDate(0, 0, -30)
			if from != "" {
				if start, err = time.Parse("2006-01-02", from); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			if !start.Before(end) {
				return errors.New("--from must be before --to")
			}

			db, err := database.ConnectSQLX(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer db.Close()

			rep, err := ledger.NewReporter(db).Revenue(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			return printJSON(rep)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD (default 30 days before --to)")
	cmd.Flags().StringVar(&to, "to", "", "last day inclusive, YYYY-MM-DD (default today)")
	return cmd
}
