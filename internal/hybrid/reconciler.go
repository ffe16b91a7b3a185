// Package hybrid merges the deterministic rule pass with the AI pass into
// one reconciled record per contract.
package hybrid

import (
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/contracts-ledger/constants"
	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

// Reconciler merges field-by-field. The AI value wins wherever both passes
// produced one, except for the fields where the rule pass is structurally
// more reliable (see Merge).
type Reconciler struct {
	vocab *equipment.Vocabulary
	log   *slog.Logger
}

func New(vocab *equipment.Vocabulary, logger *slog.Logger) *Reconciler {
	if vocab == nil {
		vocab = equipment.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{vocab: vocab, log: logger}
}

// Merge reconciles the two passes:
//
//   - Most fields: AI value if non-empty, else the rule value. The model
//     reads layouts the regexes miss.
//   - fin_by: rule value first. The anchored financing labels are exact and
//     the model tends to paraphrase company names.
//   - equipment: rule tokens first, after dropping fragments shorter than
//     two characters (single letters are almost always OCR noise). If the
//     rule pass found nothing usable, the AI string is taken as-is; if both
//     are empty, the baseline conditioner is assumed, since every contract
//     ships one. Softener exclusivity is re-applied to whatever won.
func (r *Reconciler) Merge(rule, ai contract.Record) contract.Record {
	out := contract.Record{
		SalesRep:        pick(ai.SalesRep, rule.SalesRep),
		CustomerName:    pick(ai.CustomerName, rule.CustomerName),
		PhoneNumber:     pick(ai.PhoneNumber, rule.PhoneNumber),
		CustomerAddress: pick(ai.CustomerAddress, rule.CustomerAddress),
		SoldPrice:       pick(ai.SoldPrice, rule.SoldPrice),
		Date:            pick(ai.Date, rule.Date),
		LeadPO:          pick(ai.LeadPO, rule.LeadPO),
		FinBy:           pick(rule.FinBy, ai.FinBy),
	}
	out.Equipment = r.mergeEquipment(rule.Equipment, ai.Equipment)

	r.log.Debug("hybrid.merge",
		"rule_empty", rule.IsEmpty(),
		"ai_empty", ai.IsEmpty(),
		"fin_by_source", source(rule.FinBy, out.FinBy, ai.FinBy),
		"equipment", out.Equipment,
	)
	return out
}

func (r *Reconciler) mergeEquipment(ruleEq, aiEq string) string {
	var kept []string
	for _, tok := range strings.Fields(ruleEq) {
		if len(tok) >= 2 {
			kept = append(kept, tok)
		}
	}
	merged := strings.Join(kept, " ")
	if merged == "" {
		merged = r.canonicalize(aiEq)
	}
	if merged == "" {
		merged = constants.DefaultEquipmentCode
	}
	return equipment.ApplyExclusivityString(merged)
}

// canonicalize maps any stray variant tokens in the AI string to their
// codes. Tokens outside the vocabulary pass through uppercased.
func (r *Reconciler) canonicalize(s string) string {
	var out []string
	for _, tok := range strings.Fields(s) {
		if code, ok := r.vocab.CanonicalFor(tok); ok {
			out = append(out, code)
		} else {
			out = append(out, strings.ToUpper(tok))
		}
	}
	return strings.Join(out, " ")
}

func pick(first, second string) string {
	if strings.TrimSpace(first) != "" {
		return first
	}
	return second
}

func source(rule, merged, ai string) string {
	switch merged {
	case "":
		return "none"
	case rule:
		return "rule"
	case ai:
		return "ai"
	default:
		return "mixed"
	}
}
