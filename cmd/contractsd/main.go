package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/contracts-ledger/internal/async"
	"github.com/joseph-ayodele/contracts-ledger/internal/common"
	"github.com/joseph-ayodele/contracts-ledger/internal/config"
	"github.com/joseph-ayodele/contracts-ledger/internal/extract"
	"github.com/joseph-ayodele/contracts-ledger/internal/hybrid"
	"github.com/joseph-ayodele/contracts-ledger/internal/ingest"
	"github.com/joseph-ayodele/contracts-ledger/internal/ledger"
	"github.com/joseph-ayodele/contracts-ledger/internal/llm"
	"github.com/joseph-ayodele/contracts-ledger/internal/llm/openai"
	"github.com/joseph-ayodele/contracts-ledger/internal/match"
	"github.com/joseph-ayodele/contracts-ledger/internal/pdftext"
	"github.com/joseph-ayodele/contracts-ledger/internal/pipeline"
	"github.com/joseph-ayodele/contracts-ledger/internal/pricing"
	"github.com/joseph-ayodele/contracts-ledger/internal/registry"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	biz, err := config.Load(cfg.BusinessConfigPath)
	if err != nil {
		logger.Error("failed to load business config", "path", cfg.BusinessConfigPath, "error", err)
		os.Exit(1)
	}
	vocab, err := biz.Vocabulary()
	if err != nil {
		logger.Error("invalid equipment table", "error", err)
		os.Exit(1)
	}

	var store ledger.Store
	switch cfg.Ledger.Backend {
	case "postgres":
		pg, err := ledger.OpenPostgres(ctx, ledger.PostgresConfig{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to open ledger database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.Ping(ctx, 5*time.Second); err != nil {
			logger.Error("ledger database ping failed", "error", err)
			os.Exit(1)
		}
		store = pg
	default:
		store = ledger.NewXLSXStore(cfg.Ledger.XLSXPath, logger)
	}

	reg, err := registry.Open(cfg.Registry.Path, logger)
	if err != nil {
		logger.Error("failed to open processed-file registry", "path", cfg.Registry.Path, "error", err)
		os.Exit(1)
	}
	defer func() { _ = reg.Close() }()

	var ai llm.Extractor
	if cfg.LLM.Enabled {
		ai = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, vocab, logger)
	} else {
		logger.Warn("AI pass disabled; running rule-based extraction only")
	}

	processor := &pipeline.Processor{
		Logger:   logger,
		Source:   pdftext.NewExtractor(logger),
		Rules:    extract.New(vocab, biz.RosterNames(), biz.ExcludedPhones, logger),
		AI:       ai,
		Merge:    hybrid.New(vocab, logger),
		Matcher:  match.New(biz.RosterNames(), biz.MatchThreshold, logger),
		Router:   ledger.NewRouter(store, biz, pricing.New(vocab), logger),
		Registry: reg,
	}

	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Intake.Workers),
		async.WithQueueSize(512),
		async.WithProcessTimeout(3*time.Minute),
	)

	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Intake.Roots,
		InitialScan: true,
		Debounce:    cfg.Intake.Debounce,
	})
	if err != nil {
		logger.Error("failed to start intake watcher", "roots", cfg.Intake.Roots, "error", err)
		os.Exit(1)
	}

	// Periodic rescan catches files the watcher missed (network mounts,
	// writes during restarts). The registry keeps rescans idempotent.
	go pollRoots(ctx, cfg.Intake, queue, logger)

	logger.Info("contractsd watching",
		"roots", strings.Join(cfg.Intake.Roots, ","),
		"ledger_backend", cfg.Ledger.Backend,
		"workers", cfg.Intake.Workers,
		"ai_enabled", cfg.LLM.Enabled,
	)

	for {
		select {
		case <-ctx.Done():
			queue.Shutdown(context.Background())
			logger.Info("contractsd stopped")
			return
		case path, ok := <-evCh:
			if !ok {
				queue.Shutdown(context.Background())
				return
			}
			_ = queue.Enqueue(ctx, async.Job{Path: path, SubmittedAt: time.Now()})
		case werr, ok := <-errCh:
			if ok && werr != nil {
				logger.Error("intake watcher error", "error", werr)
			}
		}
	}
}

func pollRoots(ctx context.Context, cfg common.IntakeConfig, queue async.Queue, logger *slog.Logger) {
	if cfg.PollInterval <= 0 {
		return
	}
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, root := range cfg.Roots {
				files, stats, err := ingest.ScanDirectory(ctx, root, true)
				if err != nil {
					logger.Warn("poll scan failed", "root", root, "error", err)
					continue
				}
				logger.Debug("poll scan", "root", root, "scanned", stats.Scanned, "matched", stats.Matched)
				for _, f := range files {
					_ = queue.Enqueue(ctx, async.Job{Path: f, SubmittedAt: time.Now()})
				}
			}
		}
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
