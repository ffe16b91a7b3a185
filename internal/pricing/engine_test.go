package pricing

import (
	"math"
	"testing"

	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestPrice(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name       string
		rec        contract.Record
		wantCost   float64
		wantFee    float64
		wantProfit float64
	}{
		{
			name:       "full stack sale",
			rec:        contract.Record{SoldPrice: "$10995", Equipment: "EC5 QRS RO BASE"},
			wantCost:   1715.42, // 927.21 + 275.95 + 412.26 + 100.00
			wantFee:    1099.50,
			wantProfit: 8180.08,
		},
		{
			name:       "comma price",
			rec:        contract.Record{SoldPrice: "$10,995", Equipment: "TC"},
			wantCost:   721.55,
			wantFee:    1099.50,
			wantProfit: 9173.95,
		},
		{
			name:       "unknown code contributes zero",
			rec:        contract.Record{SoldPrice: "$1000", Equipment: "TC XYZ"},
			wantCost:   721.55,
			wantFee:    100.00,
			wantProfit: 178.45,
		},
		{
			name:       "variant spellings price as their codes",
			rec:        contract.Record{SoldPrice: "$1000", Equipment: "TCM QRS Base"},
			wantCost:   1097.50, // 721.55 + 275.95 + 100.00
			wantFee:    100.00,
			wantProfit: -197.50,
		},
		{
			name: "unparseable price zeroes out",
			rec:  contract.Record{SoldPrice: "call office", Equipment: "EC5"},
		},
		{
			name: "empty price zeroes out",
			rec:  contract.Record{Equipment: "EC5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Price(tt.rec)
			if !almostEqual(got.EquipmentCost, tt.wantCost) ||
				!almostEqual(got.MarketingFee, tt.wantFee) ||
				!almostEqual(got.Profit, tt.wantProfit) {
				t.Errorf("Price() = %+v, want cost=%.2f fee=%.2f profit=%.2f",
					got, tt.wantCost, tt.wantFee, tt.wantProfit)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"$10995", 10995, true},
		{"$10,995", 10995, true},
		{"$ 8500.00", 8500, true},
		{"8500", 8500, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"$1.2.3", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.wantOK || !almostEqual(got, tt.want) {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{721.55, "$721.55"},
		{1099.5, "$1,099.50"},
		{8180.08, "$8,180.08"},
		{1234567.891, "$1,234,567.89"},
		{-45.6, "-$45.60"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
