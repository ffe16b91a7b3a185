// Package pipeline coordinates one contract document end to end: text
// extraction, the rule and AI passes, reconciliation, rep matching,
// pricing, and the ledger writes.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/contracts-ledger/internal/common"
	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/extract"
	"github.com/joseph-ayodele/contracts-ledger/internal/hybrid"
	"github.com/joseph-ayodele/contracts-ledger/internal/ledger"
	"github.com/joseph-ayodele/contracts-ledger/internal/llm"
	"github.com/joseph-ayodele/contracts-ledger/internal/match"
	"github.com/joseph-ayodele/contracts-ledger/internal/pdftext"
	"github.com/joseph-ayodele/contracts-ledger/internal/registry"
)

// Processor wires the stages together. AI is optional: with a nil
// extractor the reconciler simply merges against an empty record.
type Processor struct {
	Logger   *slog.Logger
	Source   pdftext.Source
	Rules    *extract.Extractor
	AI       llm.Extractor
	Merge    *hybrid.Reconciler
	Matcher  *match.Matcher
	Router   *ledger.Router
	Registry *registry.Registry
}

// Result is the per-document outcome.
type Result struct {
	Path           string
	AlreadyHandled bool
	MatchedRep     string
	MatchScore     int
	Route          ledger.Result
}

// ProcessFile runs one document through the pipeline. A file already in
// the registry is a cheap no-op. AI failures never fail the document;
// the rule pass alone still produces a ledger row.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}
	rid := uuid.New().String()
	ctx = common.WithRequestID(ctx, rid)
	start := time.Now()
	log := p.Logger.With("req_id", rid, "path", path)

	done, err := p.Registry.IsProcessed(ctx, path)
	if err != nil {
		return res, fmt.Errorf("registry check: %w", err)
	}
	if done {
		res.AlreadyHandled = true
		log.Debug("pipeline.skip_processed")
		return res, nil
	}

	text, err := p.Source.Text(ctx, path)
	if err != nil {
		return res, fmt.Errorf("extract text: %w", err)
	}
	lang := extract.DetectLanguage(text)
	log.Info("pipeline.text.ok", "chars", len(text), "language", string(lang))

	ruleRec := p.Rules.Parse(text)

	aiRec, aiErr := p.aiPass(ctx, text, path, lang)
	if aiErr != nil {
		log.Warn("pipeline.ai.failed", "error", aiErr)
	}

	rec := p.Merge.Merge(ruleRec, aiRec)

	matched, score := p.Matcher.Match(rec.SalesRep)
	res.MatchedRep = matched
	res.MatchScore = score

	route, err := p.Router.Route(ctx, rec, matched, path)
	if err != nil {
		return res, fmt.Errorf("route: %w", err)
	}
	res.Route = route

	if err := p.Registry.MarkProcessed(ctx, path); err != nil {
		return res, fmt.Errorf("registry mark: %w", err)
	}

	log.Info("pipeline.ok",
		"rep", matched,
		"match_score", score,
		"customer", rec.CustomerName,
		"appended", route.Appended,
		"skipped", route.Skipped,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// aiPass runs the AI extractor when one is configured. A transport error
// is reported to the caller but yields the empty record, so the merge
// degrades to the rule pass alone.
func (p *Processor) aiPass(ctx context.Context, text, path string, lang extract.Language) (contract.Record, error) {
	if p.AI == nil {
		return contract.Record{}, nil
	}
	rec, _, err := p.AI.ExtractFields(ctx, llm.ExtractRequest{
		DocumentText: text,
		FilenameHint: filepath.Base(path),
		Language:     string(lang),
	})
	if err != nil {
		return contract.Record{}, err
	}
	return rec, nil
}
