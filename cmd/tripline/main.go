package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/tripline/internal/cli"
	"github.com/alexanderramin/tripline/internal/config"
	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/geo"
	"github.com/alexanderramin/tripline/internal/planner"
	"github.com/alexanderramin/tripline/internal/provider"
	"github.com/alexanderramin/tripline/internal/repository"
	"github.com/alexanderramin/tripline/internal/route"
	"github.com/alexanderramin/tripline/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// API keys usually live in a local .env; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("TRIPLINE_CONFIG_DIR"))
	if err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	tripRepo := repository.NewSQLiteTripRepo(database)
	dayRepo := repository.NewSQLiteDayRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Provider calls are logged only on request.
	var callObserver provider.Observer = provider.NoopObserver{}
	if cfg.Provider.LogCalls {
		callObserver = provider.NewLogObserver(os.Stderr)
	}

	translator, err := route.LoadTranslationFile(cfg.TranslationFile)
	if err != nil {
		return err
	}

	routePlanner := planner.New(
		provider.NewDirectionsClient(cfg.Provider, callObserver),
		provider.NewRailClient(cfg.Provider, callObserver),
		planner.Options{
			HeuristicCountries: cfg.HeuristicCountries,
			MaxDaysAhead:       cfg.MaxDaysAhead,
			SearchTimeout:      cfg.SearchTimeout,
			Location:           time.Local,
			Translator:         translator,
			Countries:          geo.NewBoxResolver(nil),
			Logger:             logger,
		},
	)

	// Use-case events go to stderr at debug level only.
	var useCaseOut io.Writer
	if level <= slog.LevelDebug {
		useCaseOut = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(useCaseOut, level)

	app := &cli.App{
		Trips:    service.NewTripService(tripRepo, uow, observer),
		Timeline: service.NewTimelineService(dayRepo, uow, observer),
		Routes:   service.NewRouteService(dayRepo, uow, routePlanner, observer),
		Import:   service.NewImportService(uow, observer),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
