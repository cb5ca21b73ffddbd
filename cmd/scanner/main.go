package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/updown/config"
	"github.com/alejandrodnm/updown/internal/adapters/notify"
	"github.com/alejandrodnm/updown/internal/adapters/polymarket"
	"github.com/alejandrodnm/updown/internal/adapters/storage"
	"github.com/alejandrodnm/updown/internal/adapters/synthetic"
	"github.com/alejandrodnm/updown/internal/ports"
	"github.com/alejandrodnm/updown/internal/rotation"
	"github.com/alejandrodnm/updown/internal/scanner"
	"github.com/alejandrodnm/updown/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty: defaults)")
	once := flag.Bool("once", false, "run one scan cycle and exit")
	dryRun := flag.Bool("dry-run", false, "use synthetic markets instead of the real API")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full tables (default: compact 1-line)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("updown scanner starting",
		"symbols", cfg.Scanner.Symbols,
		"interval", cfg.ScanInterval(),
		"dry_run", *dryRun,
		"once", *once,
	)

	var markets ports.MarketProvider
	var books ports.BookProvider
	if *dryRun {
		provider := synthetic.NewProvider(nil)
		markets, books = provider, provider
	} else {
		client := polymarket.NewClient(cfg.API.CLOBBase, cfg.API.GammaBase)
		markets, books = client, client
	}

	var store ports.Storage
	if cfg.Storage.DSN != "" && !*dryRun {
		s, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	notifier := notify.NewConsole(*table)

	rot := rotation.New(cfg.RotationConfig(), markets, books)
	simulator := sim.New(cfg.SimParams(), nil)

	scanCfg := scanner.Config{
		ScanInterval: cfg.ScanInterval(),
		Strategy:     cfg.StrategyParams(),
		Once:         *once,
	}

	s := scanner.New(scanCfg, rot, simulator, notifier, store)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		slog.Error("scanner exited with error", "err", err)
		os.Exit(1)
	}

	session := s.Session()
	notifier.PrintSessionReport(*session.Stats, session.PnLSeries)

	if store != nil {
		// All-time totals across sessions, rebuilt from the database.
		if stats, err := store.GetSessionSummary(context.Background()); err != nil {
			slog.Warn("could not load persisted summary", "err", err)
		} else {
			slog.Info("all-time persisted totals",
				"opportunities", stats.TotalOpportunities,
				"trades", stats.TotalTrades,
				"pnl", stats.TotalPnL,
				"transitions", stats.PeriodTransitions,
			)
		}
	}
	slog.Info("updown scanner stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
