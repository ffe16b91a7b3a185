// Package pricing derives the money columns of a main-ledger row from a
// reconciled contract record.
package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

// MarketingFeeRate is withheld from every sale.
const MarketingFeeRate = 0.10

// Breakdown is the computed money triple for one contract.
type Breakdown struct {
	EquipmentCost float64
	MarketingFee  float64
	Profit        float64
}

// Engine prices records against a fixed equipment cost table.
type Engine struct {
	vocab *equipment.Vocabulary
}

func New(vocab *equipment.Vocabulary) *Engine {
	if vocab == nil {
		vocab = equipment.Default()
	}
	return &Engine{vocab: vocab}
}

// Price computes the breakdown for a record:
//
//	cost   = sum of unit costs of the codes recognized in the equipment string
//	fee    = sold price * MarketingFeeRate
//	profit = sold price - cost - fee
//
// The equipment string goes through variant recognition first, so stray
// variant spellings ("TCM", "Base") still price as their canonical codes.
// Tokens the vocabulary does not recognize contribute zero. An unparseable
// sold price yields the zero breakdown; the row still lands in the ledger,
// the money columns just read $0.00.
func (e *Engine) Price(rec contract.Record) Breakdown {
	price, ok := ParseAmount(rec.SoldPrice)
	if !ok {
		return Breakdown{}
	}
	var cost float64
	for _, code := range e.vocab.Normalize(rec.Equipment) {
		if c, known := e.vocab.Cost(code); known {
			cost += c
		}
	}
	fee := price * MarketingFeeRate
	return Breakdown{
		EquipmentCost: cost,
		MarketingFee:  fee,
		Profit:        price - cost - fee,
	}
}

var amountJunkPattern = regexp.MustCompile(`[^0-9.]`)

// ParseAmount reads a dollar amount out of a noisy extracted string
// ("$10,995", "$ 8500.00"). Everything but digits and the decimal point
// is stripped first.
func ParseAmount(s string) (float64, bool) {
	cleaned := amountJunkPattern.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatCurrency renders a ledger money cell: "$10,995.00".
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]
	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)
	out := fmt.Sprintf("$%s%s", strings.Join(parts, ","), frac)
	if neg {
		return "-" + out
	}
	return out
}
