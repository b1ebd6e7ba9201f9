package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"reportsvc/internal/config"
	"reportsvc/internal/repository/postgres"
	"reportsvc/internal/seed"
	"reportsvc/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type options struct {
	dropTables  bool
	clearData   bool
	schemaOnly  bool
	fixturePath string
}

var errBlockedInProd = errors.New("destructive operations (--drop-tables or --clear-data) are blocked in production")

// checkSafety prevents destructive operations in production
func checkSafety(environment string, opts options) error {
	if environment == "prod" && (opts.dropTables || opts.clearData) {
		return errBlockedInProd
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load sample projects and reports",
		Long: `seed makes sure the projects and reports tables exist for the configured
environment and loads sample data from a YAML fixture.
Without --fixture the built-in sample data is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dropTables, "drop-tables", false, "Drop all tables before seeding (fresh start)")
	cmd.Flags().BoolVar(&opts.clearData, "clear-data", false, "Delete all projects and reports (keep schema) and exit")
	cmd.Flags().BoolVar(&opts.schemaOnly, "schema-only", false, "Only set up schema, don't load any data")
	cmd.Flags().StringVarP(&opts.fixturePath, "fixture", "f", "", "YAML fixture to load instead of the built-in sample data")
	cmd.MarkFlagsMutuallyExclusive("clear-data", "schema-only")

	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := checkSafety(cfg.Environment, opts); err != nil {
		return err
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Parse the fixture before touching the database
	fixture, err := loadFixture(opts.fixturePath)
	if err != nil {
		return err
	}

	fmt.Printf("Seeding database (environment: %s, prefix: %s)\n", cfg.Environment, cfg.TablePrefix)

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if opts.dropTables {
		color.Yellow("Dropping all tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	color.Green("Schema ready")

	if opts.schemaOnly {
		return nil
	}

	if opts.clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
		color.Green("Data cleared")
		return nil
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	reportRepo := postgres.NewReportRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)

	seeder := seed.NewSeeder(
		service.NewProjectService(projectRepo, reportRepo, txManager, logger),
		service.NewReportService(reportRepo, service.NewResourceValidator(projectRepo), logger),
		logger,
	)

	res, err := seeder.Seed(ctx, fixture)
	if err != nil {
		color.Red("Seeding stopped after %d projects and %d reports", res.Projects, res.Reports)
		return err
	}

	color.Green("Created %d projects and %d reports", res.Projects, res.Reports)
	return nil
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.DefaultFixture()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return seed.LoadFixture(f)
}
