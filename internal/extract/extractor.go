package extract

import (
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

// document is the per-parse working view: the raw text, its lines, and the
// detected language. Strategies read it, never mutate it.
type document struct {
	text  string
	lines []string
	lang  Language
}

// strategy is one attempt at one field. Chains run in order and the first
// hit wins; a miss never aborts the remaining fields.
type strategy func(d *document) (string, bool)

func firstHit(d *document, chain ...strategy) string {
	for _, s := range chain {
		if v, ok := s(d); ok && v != "" {
			return v
		}
	}
	return ""
}

// Extractor is the deterministic (rule-based) pass over contract text.
type Extractor struct {
	vocab          *equipment.Vocabulary
	roster         []string
	excludedPhones map[string]struct{}
	logger         *slog.Logger
}

// New builds an extractor around the fixed business data. roster entries
// are canonical full names; excludedPhones are 10-digit strings that must
// never be captured as the customer phone.
func New(vocab *equipment.Vocabulary, roster []string, excludedPhones []string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	deny := make(map[string]struct{}, len(excludedPhones))
	for _, p := range excludedPhones {
		deny[p] = struct{}{}
	}
	return &Extractor{
		vocab:          vocab,
		roster:         roster,
		excludedPhones: deny,
		logger:         logger,
	}
}

// Parse runs every field chain against the document text. Fields that no
// strategy can fill stay empty; equipment defaults are the reconciler's
// job, not ours.
func (e *Extractor) Parse(text string) contract.Record {
	d := &document{
		text:  text,
		lines: strings.Split(text, "\n"),
		lang:  DetectLanguage(text),
	}

	rec := contract.Record{
		SalesRep:        firstHit(d, e.salesRepFromRoster, e.salesRepNearMarker),
		CustomerName:    firstHit(d, customerNameFromLabels),
		PhoneNumber:     firstHit(d, e.phoneNearMarker, e.phoneBeforeEmail),
		CustomerAddress: firstHit(d, addressStructured, addressLinePair),
		Equipment:       firstHit(d, modelNumberBlob, e.canonicalModelPhrase, e.equipmentSectionScan),
		SoldPrice:       firstHit(d, priceAfterAnchor),
		Date:            firstHit(d, firstSlashDate),
		LeadPO:          firstHit(d, leadPOMarker, bareLeadNumber, spanishLeadPhrase),
		FinBy:           firstHit(d, financeCompany),
	}

	e.logger.Debug("extract.rule_pass",
		"language", string(d.lang),
		"sales_rep", rec.SalesRep != "",
		"customer", rec.CustomerName != "",
		"phone", rec.PhoneNumber != "",
		"address", rec.CustomerAddress != "",
		"equipment", rec.Equipment,
		"price", rec.SoldPrice,
		"lead_po", rec.LeadPO,
	)
	return rec
}

// window returns line indexes lo..hi clamped to the document, excluding
// any index in skip.
func (d *document) window(lo, hi int, skip int) []int {
	if lo < 0 {
		lo = 0
	}
	if hi > len(d.lines) {
		hi = len(d.lines)
	}
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		if i == skip {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}
