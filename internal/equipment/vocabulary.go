package equipment

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry is one priced line-item: a canonical code, its unit cost, and the
// textual variants (misspellings, bilingual forms) it is recognized by.
type Entry struct {
	Code     string   `yaml:"code"`
	Cost     float64  `yaml:"cost"`
	Variants []string `yaml:"variants"`
}

// Vocabulary is the fixed equipment table. Entry order is registration
// order and is load-bearing: recognition emits codes in table order, and
// overlapping variants resolve first-registered-wins.
type Vocabulary struct {
	entries  []Entry
	patterns [][]*regexp.Regexp
	costs    map[string]float64
	byToken  map[string]string
}

// New compiles a vocabulary from an ordered entry list.
func New(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		entries:  entries,
		patterns: make([][]*regexp.Regexp, len(entries)),
		costs:    make(map[string]float64, len(entries)),
		byToken:  make(map[string]string),
	}
	for i, e := range entries {
		if e.Code == "" {
			return nil, fmt.Errorf("equipment: entry %d has no code", i)
		}
		if _, dup := v.costs[e.Code]; dup {
			return nil, fmt.Errorf("equipment: duplicate code %q", e.Code)
		}
		v.costs[e.Code] = e.Cost
		pats := make([]*regexp.Regexp, 0, len(e.Variants))
		for _, variant := range e.Variants {
			up := strings.ToUpper(strings.TrimSpace(variant))
			if up == "" {
				continue
			}
			// Whole-word match against the uppercased blob. Trailing dots
			// ("T.C.", "R.O.") are trimmed from the pattern: \b cannot sit
			// between a dot and a space, so the final dot would make the
			// variant unmatchable. The trimmed form still matches inside
			// the dotted spelling.
			word := strings.TrimRight(up, ".")
			if word == "" {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("equipment: variant %q of %s: %w", variant, e.Code, err)
			}
			pats = append(pats, re)
			// First-registered-wins for overlapping variants.
			if _, taken := v.byToken[up]; !taken {
				v.byToken[up] = e.Code
			}
		}
		v.patterns[i] = pats
	}
	return v, nil
}

// CanonicalFor maps a single token to its canonical code when the token is
// exactly one of the registered variants (case-insensitive).
func (v *Vocabulary) CanonicalFor(token string) (string, bool) {
	code, ok := v.byToken[strings.ToUpper(strings.TrimSpace(token))]
	return code, ok
}

// MustNew is New for compiled-in tables.
func MustNew(entries []Entry) *Vocabulary {
	v, err := New(entries)
	if err != nil {
		panic(err)
	}
	return v
}

// Entries returns the table in registration order.
func (v *Vocabulary) Entries() []Entry { return v.entries }

// Cost returns the unit cost for a canonical code. Unknown codes report
// false; callers treat them as zero-cost rather than an error.
func (v *Vocabulary) Cost(code string) (float64, bool) {
	c, ok := v.costs[code]
	return c, ok
}

// Recognize scans a free-text blob and returns the canonical codes whose
// variants appear as whole words, deduplicated, in vocabulary order.
func (v *Vocabulary) Recognize(blob string) []string {
	if strings.TrimSpace(blob) == "" {
		return nil
	}
	up := strings.ToUpper(blob)
	var found []string
	for i, e := range v.entries {
		for _, re := range v.patterns[i] {
			if re.MatchString(up) {
				found = append(found, e.Code)
				break
			}
		}
	}
	return found
}

// DefaultEntries is the production cost/variant table. Costs are per-unit
// USD; variants cover English, Spanish, and the usual OCR spellings.
func DefaultEntries() []Entry {
	return []Entry{
		{Code: "EC5", Cost: 927.21, Variants: []string{"EC5", "ECS", "E.C.5", "System 5", "ES5", "ES-5"}},
		{Code: "TC", Cost: 721.55, Variants: []string{"TC", "TCM", "T.C.", "TC Series", "TC Conditioner", "Acondicionador"}},
		{Code: "BCM", Cost: 721.55, Variants: []string{"BCM", "BCM Series", "BCM Conditioner"}},
		{Code: "HYD", Cost: 235.00, Variants: []string{"HYD", "Hydro", "Hydro System", "Hydro Refiner", "Hidro"}},
		{Code: "QRS", Cost: 275.95, Variants: []string{"QRS", "Q.R.S", "Quad", "Carbon Filter"}},
		{Code: "AM", Cost: 358.89, Variants: []string{"AM", "Airmaster", "Air Purifier"}},
		{Code: "CS", Cost: 472.36, Variants: []string{"CS", "Clean Start", "Laundry System", "Inicio Limpio"}},
		{Code: "UV", Cost: 505.00, Variants: []string{"UV", "UV Light", "Ultraviolet", "Lamp", "Luz UV", "Ultravioleta"}},
		{Code: "ALK", Cost: 125.83, Variants: []string{"ALK", "Alkaline", "Alka", "Filtro Alcalino", "Alcalino"}},
		{Code: "OXY", Cost: 2066.40, Variants: []string{"OXY", "Oxygen", "Iron Filter", "Oxy System", "Oxigeno"}},
		{Code: "RO", Cost: 412.26, Variants: []string{"RO", "R.O.", "Reverse Osmosis", "Osmosis", "Osmosis Inversa"}},
		{Code: "PFAS", Cost: 190.74, Variants: []string{"PFAS", "PFOS", "Forever Chemical Filter"}},
		{Code: "CAGE", Cost: 500.00, Variants: []string{"CAGE", "Security Cage", "Reja", "Jaula"}},
		{Code: "BASE", Cost: 100.00, Variants: []string{"BASE", "Stand", "Soporte"}},
		{Code: "COOLER", Cost: 348.00, Variants: []string{"Cooler", "Water Cooler", "Dispenser", "Enfriador"}},
		{Code: "PUMP", Cost: 1200.00, Variants: []string{"Pump", "Well Pump", "Bomba", "Jet Pump"}},
		{Code: "TANK", Cost: 500.00, Variants: []string{"Pressure Tank", "Tank", "Tanque"}},
		{Code: "SOAP", Cost: 0.00, Variants: []string{"Soap", "Jabon", "Soap Package"}},
	}
}

// Default returns the compiled production vocabulary.
func Default() *Vocabulary {
	return MustNew(DefaultEntries())
}
