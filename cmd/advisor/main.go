package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/cli"
	"github.com/alexanderramin/advisor/internal/config"
	"github.com/alexanderramin/advisor/internal/db"
	"github.com/alexanderramin/advisor/internal/repository"
	"github.com/alexanderramin/advisor/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(logger.With("component", "service"))
	}

	uow := db.NewSQLiteUnitOfWork(database)
	students := service.NewStudentService(repository.NewSQLiteStudentRepo(database), uow, observer)
	advising, err := service.NewAdvisingService(cat, students, service.AdvisingOptions{
		StartTerm: cfg.StartTerm,
		CacheSize: cfg.CacheSize,
		Logger:    logger,
	}, observer)
	if err != nil {
		return err
	}

	app := &cli.App{
		Students: students,
		Advising: advising,
		Catalog:  cat,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}

// loadCatalog reads the catalog from the configured data directory, or the
// embedded copy. Data problems are reported but do not stop the tool.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	load := catalog.Default
	if cfg.DataDir != "" {
		load = func() (*catalog.Catalog, error) { return catalog.LoadDir(cfg.DataDir) }
	}
	cat, err := load()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if errs := catalog.Validate(cat); len(errs) > 0 {
		warnCatalog(os.Stderr, errs)
	}
	return cat, nil
}

func warnCatalog(w io.Writer, errs []error) {
	fmt.Fprintf(w, "Warning: catalog data has %d problem(s); run 'advisor catalog validate' for details\n", len(errs))
}
