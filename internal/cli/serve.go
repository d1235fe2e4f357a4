// internal/cli/serve.go
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"teahigh/internal/config"
	"teahigh/internal/server"
	"teahigh/internal/supplier"
	"teahigh/internal/tea"
	"teahigh/internal/telemetry"
	"teahigh/pkg/eventstore"
)

func newServeCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. The collection lives in memory and starts from the
demo data unless seeding is disabled. Set db.url (TEAHIGH_DB_URL) to journal
every change to PostgreSQL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			verbosity, _ := cmd.Flags().GetInt("verbosity")
			logger := telemetry.NewLogger(cmd.ErrOrStderr(), verbosity)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, logger)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("db-url", "", "PostgreSQL URL for the mutation journal")
	cmd.Flags().Bool("seed", true, "start from the demo collection")
	v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	v.BindPFlag("db.url", cmd.Flags().Lookup("db-url"))
	v.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, logger logr.Logger) error {
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error(err, "telemetry shutdown failed")
		}
	}()

	journal, closeJournal, err := openJournal(ctx, cfg.DB, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	opts := []tea.Option{tea.WithLogger(logger.WithName("tea"))}
	var suppliers []supplier.Supplier
	if cfg.Seed {
		opts = append(opts, tea.WithTeas(tea.SeedTeas()))
		suppliers = supplier.SeedSuppliers()
	}
	teas := tea.NewService(journal, opts...)
	directory := supplier.NewDirectory(teas, suppliers...)

	srv := server.New(teas, directory, logger.WithName("http"), server.Options{
		WritesPerMinute: cfg.RateLimit.PerMinute,
		WriteBurst:      cfg.RateLimit.Burst,
	})
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// openJournal returns a nil journal, so the store keeps its own, unless a
// database URL is configured.
func openJournal(ctx context.Context, cfg config.DBConfig, logger logr.Logger) (tea.Journal, func() error, error) {
	if cfg.URL == "" {
		return nil, func() error { return nil }, nil
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	es := eventstore.NewEventStore(db)
	if err := es.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("journaling to PostgreSQL")
	return es, db.Close, nil
}
