package main

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

type options struct {
	migrationsPath string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the CRM database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.migrationsPath, "path", "", "migrations directory (default: database.migrations_path or ./migrations)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
					return m.Up()
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
					return m.Down()
				})
			},
		},
		&cobra.Command{
			Use:   "step <n>",
			Short: "Apply n migrations, or roll back when n is negative",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return opts.withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
					return m.Steps(n)
				})
			},
		},
		&cobra.Command{
			Use:   "goto <version>",
			Short: "Migrate up or down to a version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return opts.withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
					return m.GoTo(uint(version))
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Record a version as applied without running it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return opts.withMigrator(func(m *migration.Migrator, _ *zap.Logger) error {
					return m.Force(version)
				})
			},
		},
		&cobra.Command{
			Use:   "create <name> [description]",
			Short: "Create an empty up/down migration pair",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				description := ""
				if len(args) == 2 {
					description = args[1]
				}
				mf, err := migration.CreateMigration(opts.path(""), args[0], description)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mf.UpPath)
				fmt.Fprintln(cmd.OutOrStdout(), mf.DownPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List available migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				names, err := migration.ListMigrations(opts.path(""))
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
	)
	return root
}

// path resolves the migrations directory: the flag, then configured, then ./migrations
func (o *options) path(configured string) string {
	path := o.migrationsPath
	if path == "" {
		path = configured
	}
	if path == "" {
		path = defaultMigrationsPath
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// withMigrator connects with the loaded configuration and hands fn a ready migrator
func (o *options) withMigrator(fn func(*migration.Migrator, *zap.Logger) error) error {
	log, err := logger.New(logger.Config{Level: o.logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	path := o.path(cfg.Database.MigrationsPath)
	log.Info("Migration CLI started", zap.String("migrations_path", path))

	m, err := migration.New(db, path, log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return fn(m, log)
}
