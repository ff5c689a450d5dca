package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agencyops/timeclock/internal/capture"
	"github.com/agencyops/timeclock/internal/cli"
	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/config"
	"github.com/agencyops/timeclock/internal/db"
	"github.com/agencyops/timeclock/internal/repository"
	"github.com/agencyops/timeclock/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	workerRepo := repository.NewSQLiteWorkerRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	breakRepo := repository.NewSQLiteBreakRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire the capture handshake client
	var captureObserver capture.Observer = capture.NoopObserver{}
	if cfg.Capture.LogCalls {
		captureObserver = capture.NewLogObserver(os.Stderr)
	}
	gate := capture.NewHTTPGate(cfg.Capture, captureObserver)

	clk := clock.System()

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Timeclock: service.NewTimeclockService(sessionRepo, breakRepo, uow, gate, clk, observers...),
		Reports:   service.NewReportService(sessionRepo, breakRepo, clk),
		Workers:   service.NewWorkerService(workerRepo, clk),
		Clock:     clk,
		HTTPAddr:  cfg.HTTP.Addr,
	}

	// Detect interactive terminal for the clock-in worker picker.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
