package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/tradedash/config"
	"github.com/alejandrodnm/tradedash/internal/adapters/notify"
	"github.com/alejandrodnm/tradedash/internal/adapters/render"
	"github.com/alejandrodnm/tradedash/internal/adapters/source"
	"github.com/alejandrodnm/tradedash/internal/dashboard"
	"github.com/alejandrodnm/tradedash/internal/ports"
	"github.com/alejandrodnm/tradedash/internal/web"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	dataDir := flag.String("data", "", "data directory (overrides config)")
	outDir := flag.String("out", "", "output directory for dashboard.html (overrides config)")
	srcKind := flag.String("source", "", "dataset source: csv|sqlite (overrides config)")
	serve := flag.Bool("serve", false, "serve the dashboard over HTTP after rendering")
	table := flag.Bool("table", false, "print full summary + recent trades table (default: compact 1-line)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
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
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *outDir != "" {
		cfg.Dashboard.OutDir = *outDir
	}
	if *srcKind != "" {
		cfg.Data.Source = *srcKind
	}
	setupLogger(cfg.Log)

	slog.Info("tradedash starting",
		"config", *configPath,
		"source", cfg.Data.Source,
		"data_dir", cfg.Data.Dir,
		"serve", *serve,
	)

	var src ports.DatasetSource
	switch cfg.Data.Source {
	case "csv":
		src = source.NewCSV(cfg.Data.Dir, cfg.Data.TradesFile, cfg.Data.EquityFile)
	case "sqlite":
		src = source.NewSQLite(cfg.Data.DSN)
	default:
		slog.Error("unknown data source", "source", cfg.Data.Source)
		os.Exit(1)
	}

	html := render.NewHTML(cfg.Dashboard.OutDir, cfg.Dashboard.Title, cfg.Dashboard.RecentTrades)
	console := notify.NewConsole(cfg.Dashboard.RecentTrades, *table)

	d := dashboard.New(src, console, html)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := d.Run(ctx)
	if err != nil {
		slog.Error("dashboard run failed", "err", err)
		os.Exit(1)
	}
	if result == nil {
		slog.Info("no datasets available — idle (supply the CSVs and re-run)")
	}

	if !*serve {
		return
	}

	srv := web.New(cfg.Serve.Addr, cfg.Dashboard.OutDir, cfg.Data.Dir,
		cfg.Serve.RequestsPerSec, cfg.Serve.Burst, result)
	if err := srv.Serve(ctx); err != nil {
		slog.Error("server exited with error", "err", err)
		os.Exit(1)
	}
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
