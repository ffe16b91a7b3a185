package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", "Here you go:\n```json\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func sanitized(t *testing.T, raw string) map[string]string {
	t.Helper()
	out, _, err := NormalizeAndSanitizeJSON([]byte(raw), nil)
	if err != nil {
		t.Fatalf("NormalizeAndSanitizeJSON: %v", err)
	}
	var m map[string]string
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal sanitized output: %v", err)
	}
	return m
}

func TestNormalizeAndSanitizeJSON(t *testing.T) {
	raw := `{
		"salesperson": "Walter Pena",
		"customer_name": " Xiomara Suarez ",
		"phone": "305-290-9033",
		"customer_address": null,
		"equipment": "EC5 QRS",
		"price": 10995,
		"date": "03/15/2024",
		"lead_po": "F00123456",
		"fin_by": "ISPC",
		"confidence": 0.93
	}`
	m := sanitized(t, raw)

	if m["sales_rep"] != "Walter Pena" {
		t.Errorf("sales_rep = %q, want synonym rename", m["sales_rep"])
	}
	if m["customer_name"] != "Xiomara Suarez" {
		t.Errorf("customer_name = %q, want trimmed", m["customer_name"])
	}
	if m["phone_number"] != "3052909033" {
		t.Errorf("phone_number = %q, want separators stripped", m["phone_number"])
	}
	if m["customer_address"] != "" {
		t.Errorf("customer_address = %q, want null coerced to empty", m["customer_address"])
	}
	if m["sold_price"] != "$10995" {
		t.Errorf("sold_price = %q, want numeric coerced and $-prefixed", m["sold_price"])
	}
	if _, ok := m["confidence"]; ok {
		t.Error("unknown key confidence survived sanitize")
	}

	// The repaired output must pass the strict schema.
	if err := ValidateJSONAgainstSchema(BuildContractJSONSchema(), mustMarshal(t, m)); err != nil {
		t.Errorf("sanitized output fails schema: %v", err)
	}
}

func TestNormalizeAndSanitizeJSON_MissingKeysFilled(t *testing.T) {
	m := sanitized(t, `{"sales_rep":"Carlo Dalelio"}`)
	for k := range schemaKeys {
		if _, ok := m[k]; !ok {
			t.Errorf("key %s missing after sanitize", k)
		}
	}
	if m["equipment"] != "" {
		t.Errorf("equipment = %q, want empty fill", m["equipment"])
	}
}

func TestNormalizeAndSanitizeJSON_NotJSON(t *testing.T) {
	if _, _, err := NormalizeAndSanitizeJSON([]byte("I could not read the document."), nil); err == nil {
		t.Fatal("want error for non-JSON input")
	}
}

func TestValidateSchema_RejectsBadPatterns(t *testing.T) {
	schema := BuildContractJSONSchema()
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"short phone", "phone_number", "30529090"},
		{"unprefixed price", "sold_price", "10995"},
		{"iso date", "date", "2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := emptyRecordMap()
			m[tt.key] = tt.value
			if err := ValidateJSONAgainstSchema(schema, mustMarshal(t, m)); err == nil {
				t.Errorf("%s=%q passed schema, want rejection", tt.key, tt.value)
			}
		})
	}

	// All-empty is the degraded-but-valid shape.
	if err := ValidateJSONAgainstSchema(schema, mustMarshal(t, emptyRecordMap())); err != nil {
		t.Errorf("all-empty record fails schema: %v", err)
	}
}

func TestNormalizeAIEquipment(t *testing.T) {
	vocab := equipment.Default()
	tests := []struct {
		in   string
		want string
	}{
		{"EC5 QRS RO", "EC5 QRS RO"},
		{"ec5 qrs ro ec5", "EC5 QRS RO"},
		{"HYDRO RO", "HYD RO"},
		{"XYZ RO", "XYZ RO"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAIEquipment(vocab, tt.in); got != tt.want {
			t.Errorf("NormalizeAIEquipment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func emptyRecordMap() map[string]string {
	m := make(map[string]string, len(schemaKeys))
	for k := range schemaKeys {
		m[k] = ""
	}
	return m
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestBuildSystemPrompt_CarriesVocabulary(t *testing.T) {
	p := BuildSystemPrompt(equipment.Default())
	for _, want := range []string{"EC5", "TC", "Osmosis Inversa", "-> RO"} {
		if !strings.Contains(p, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
