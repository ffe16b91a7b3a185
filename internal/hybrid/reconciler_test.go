package hybrid

import (
	"testing"

	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
)

func TestMerge_AIPreferredForGeneralFields(t *testing.T) {
	rule := contract.Record{
		SalesRep:     "Bryan Gonzalez",
		CustomerName: "Suarez Xiomara",
		PhoneNumber:  "3052909033",
		SoldPrice:    "$10995",
	}
	ai := contract.Record{
		SalesRep:     "Bryan Gonzalez",
		CustomerName: "Xiomara Suarez",
		SoldPrice:    "$10995",
		Date:         "03/15/2024",
	}

	got := New(nil, nil).Merge(rule, ai)

	if got.CustomerName != "Xiomara Suarez" {
		t.Errorf("CustomerName = %q, want AI value", got.CustomerName)
	}
	if got.PhoneNumber != "3052909033" {
		t.Errorf("PhoneNumber = %q, want rule fallback when AI empty", got.PhoneNumber)
	}
	if got.Date != "03/15/2024" {
		t.Errorf("Date = %q, want AI value", got.Date)
	}
}

func TestMerge_FinByPrefersRule(t *testing.T) {
	rule := contract.Record{FinBy: "ISPC"}
	ai := contract.Record{FinBy: "ISPC Financial Services"}

	got := New(nil, nil).Merge(rule, ai)
	if got.FinBy != "ISPC" {
		t.Errorf("FinBy = %q, want rule value", got.FinBy)
	}

	got = New(nil, nil).Merge(contract.Record{}, ai)
	if got.FinBy != "ISPC Financial Services" {
		t.Errorf("FinBy = %q, want AI fallback when rule empty", got.FinBy)
	}
}

func TestMerge_Equipment(t *testing.T) {
	tests := []struct {
		name string
		rule string
		ai   string
		want string
	}{
		{"rule wins over ai", "TC QRS", "EC5 RO", "TC QRS"},
		{"single-letter fragments dropped", "A TC B", "EC5", "TC"},
		{"all fragments, ai fallback", "A B C", "EC5 QRS", "EC5 QRS"},
		{"both empty defaults to baseline", "", "", "TC"},
		{"exclusivity applied to winner", "EC5 TC RO", "", "EC5 RO"},
		{"exclusivity applied to ai fallback", "", "EC5 TC", "EC5"},
	}
	r := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Merge(contract.Record{Equipment: tt.rule}, contract.Record{Equipment: tt.ai})
			if got.Equipment != tt.want {
				t.Errorf("Equipment = %q, want %q", got.Equipment, tt.want)
			}
		})
	}
}

func TestMerge_EmptyAIPassDegradesToRule(t *testing.T) {
	rule := contract.Record{
		SalesRep:     "Rocny Rodriguez",
		CustomerName: "Dennis Soler",
		PhoneNumber:  "7865550147",
		Equipment:    "TC QRS RO",
		SoldPrice:    "$8500",
		Date:         "04/02/2024",
		LeadPO:       "ORD556677",
		FinBy:        "Goodleap",
	}
	got := New(nil, nil).Merge(rule, contract.Record{})
	rule.Equipment = "TC QRS RO"
	if got != rule {
		t.Errorf("merged = %+v, want rule record unchanged", got)
	}
}
