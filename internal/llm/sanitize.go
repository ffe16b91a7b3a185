package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

var (
	plainAmountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	nonDigitPattern    = regexp.MustCompile(`\D`)
)

// StripCodeFences unwraps a model response that arrived inside a markdown
// code block (```json ... ``` or plain ``` ... ```).
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
	} else {
		return s
	}
	if j := strings.Index(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}

// Key synonyms models drift into, mapped back to the schema keys.
var keySynonyms = map[string]string{
	"salesperson":      "sales_rep",
	"salesperson_name": "sales_rep",
	"customer":         "customer_name",
	"phone":            "phone_number",
	"address":          "customer_address",
	"price":            "sold_price",
	"sale_price":       "sold_price",
	"contract_date":    "date",
	"po_number":        "lead_po",
	"lead":             "lead_po",
	"financing":        "fin_by",
	"finance_company":  "fin_by",
}

var schemaKeys = map[string]struct{}{
	"sales_rep": {}, "customer_name": {}, "phone_number": {},
	"customer_address": {}, "equipment": {}, "sold_price": {},
	"date": {}, "lead_po": {}, "fin_by": {},
}

// NormalizeAndSanitizeJSON repairs a parsed-but-untidy model response:
// renames known key synonyms, coerces scalars to strings, trims values,
// replaces nulls with "", and removes unknown keys so the strict
// additionalProperties=false schema can pass.
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var dropped []string
	for from, to := range keySynonyms {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	for k := range schemaKeys {
		v, present := m[k]
		if !present {
			m[k] = ""
			dropped = append(dropped, k+"(missing)")
			continue
		}
		switch t := v.(type) {
		case nil:
			m[k] = ""
			dropped = append(dropped, k+"(null)")
		case string:
			m[k] = strings.TrimSpace(t)
		case float64:
			if t == float64(int64(t)) {
				m[k] = fmt.Sprintf("%d", int64(t))
			} else {
				m[k] = fmt.Sprintf("%.2f", t)
			}
			dropped = append(dropped, k+"(number)")
		default:
			m[k] = ""
			dropped = append(dropped, k+"(type)")
		}
	}

	// Light field repair: bare amounts get their $ back, phone separators
	// are stripped. Anything still off fails schema validation downstream.
	if s, ok := m["sold_price"].(string); ok && plainAmountPattern.MatchString(s) {
		m["sold_price"] = "$" + s
		dropped = append(dropped, "sold_price($)")
	}
	if s, ok := m["phone_number"].(string); ok && s != "" {
		digits := nonDigitPattern.ReplaceAllString(s, "")
		if digits != s && len(digits) == 10 {
			m["phone_number"] = digits
			dropped = append(dropped, "phone_number(separators)")
		}
	}

	for k := range m {
		if _, ok := schemaKeys[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// DecodeFields parses a sanitized response into a record.
func DecodeFields(raw []byte) (contract.Record, error) {
	var rec contract.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return contract.Record{}, fmt.Errorf("unmarshal fields: %w", err)
	}
	return rec, nil
}

// NormalizeAIEquipment canonicalizes the model's equipment string token by
// token: known variants map to their canonical code, unknown tokens are
// kept uppercased (the hybrid merge decides their fate), duplicates are
// dropped preserving input order.
func NormalizeAIEquipment(vocab *equipment.Vocabulary, s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range strings.Fields(s) {
		code, ok := vocab.CanonicalFor(tok)
		if !ok {
			code = strings.ToUpper(tok)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return strings.Join(out, " ")
}
