package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

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

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory of contracts to process (required)")
		out       = flag.String("out", "", "ledger workbook path (defaults to LEDGER_XLSX_PATH)")
		reprocess = flag.Bool("reprocess", false, "clear the processed-file registry and run every file again")
		noAI      = flag.Bool("no-ai", false, "skip the AI pass, rule-based extraction only")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *out != "" {
		cfg.Ledger.Backend = "xlsx"
		cfg.Ledger.XLSXPath = *out
	}
	if *noAI {
		cfg.LLM.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	biz, err := config.Load(cfg.BusinessConfigPath)
	if err != nil {
		printError("Error: business config: %v\n", err)
		os.Exit(1)
	}
	vocab, err := biz.Vocabulary()
	if err != nil {
		printError("Error: equipment table: %v\n", err)
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
			printError("Error: ledger database: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
	default:
		store = ledger.NewXLSXStore(cfg.Ledger.XLSXPath, logger)
	}

	reg, err := registry.Open(cfg.Registry.Path, logger)
	if err != nil {
		printError("Error: registry: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = reg.Close() }()

	if *reprocess {
		n, err := reg.Clear(ctx)
		if err != nil {
			printError("Error: clearing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("registry cleared (%d entries)\n", n)
	}

	var ai llm.Extractor
	if cfg.LLM.Enabled {
		ai = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, vocab, logger)
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

	files, stats, err := ingest.ScanDirectory(ctx, *dir, true)
	if err != nil {
		printError("Error: scanning %s: %v\n", *dir, err)
		os.Exit(1)
	}
	fmt.Printf("found %d contracts under %s (%d files scanned)\n", stats.Matched, *dir, stats.Scanned)

	var processed, skipped, unmatched, failed int
	for _, f := range files {
		res, err := processor.ProcessFile(ctx, f)
		switch {
		case err != nil:
			failed++
			printError("FAIL  %s: %v\n", f, err)
		case res.AlreadyHandled:
			skipped++
		default:
			processed++
			rep := res.MatchedRep
			if rep == "" {
				unmatched++
				rep = "(backup ledger)"
			}
			fmt.Printf("OK    %s -> %s\n", f, rep)
		}
	}

	fmt.Printf("done: %d processed, %d already handled, %d unmatched reps, %d failed\n",
		processed, skipped, unmatched, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
