package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/contracts-ledger/internal/common"
	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

// SalesRep is one roster entry: the canonical full name (case-sensitive
// source of truth) and the opaque ledger the rep's deals land in.
type SalesRep struct {
	Name     string `yaml:"name"`
	LedgerID string `yaml:"ledger_id"`
}

// Business is the static business configuration: the rep roster, ledger
// destinations, the equipment table, and extraction tuning. Loaded once at
// startup and read-only afterwards.
type Business struct {
	Reps           []SalesRep        `yaml:"reps"`
	MainLedgerID   string            `yaml:"main_ledger_id"`
	BackupLedgerID string            `yaml:"backup_ledger_id"`
	Equipment      []equipment.Entry `yaml:"equipment"`
	// ExcludedPhones are numbers that must never be captured as the
	// customer's phone (the company's own contact lines).
	ExcludedPhones []string `yaml:"excluded_phones"`
	MatchThreshold int      `yaml:"match_threshold"`
}

// Load reads a YAML business config from path. Missing sections fall back
// to the compiled-in defaults; an empty path returns the defaults as-is.
func Load(path string) (*Business, error) {
	b := DefaultBusiness()
	if path == "" {
		return b, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read business config: %w", err)
	}
	var in Business
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("parse business config: %w", err)
	}
	if len(in.Reps) > 0 {
		b.Reps = in.Reps
	}
	if in.MainLedgerID != "" {
		b.MainLedgerID = in.MainLedgerID
	}
	if in.BackupLedgerID != "" {
		b.BackupLedgerID = in.BackupLedgerID
	}
	if len(in.Equipment) > 0 {
		b.Equipment = in.Equipment
	}
	if len(in.ExcludedPhones) > 0 {
		b.ExcludedPhones = in.ExcludedPhones
	}
	if in.MatchThreshold > 0 {
		b.MatchThreshold = in.MatchThreshold
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("business config: %w", err)
	}
	return b, nil
}

// Validate checks the merged configuration before anything is wired to it.
func (b *Business) Validate() error {
	v := common.NewValidator()
	v.Field("main_ledger_id", b.MainLedgerID, common.Required)
	v.Field("backup_ledger_id", b.BackupLedgerID, common.Required)
	for i, r := range b.Reps {
		v.Field(fmt.Sprintf("reps[%d].name", i), r.Name, common.Required)
		v.Field(fmt.Sprintf("reps[%d].ledger_id", i), r.LedgerID, common.Required)
	}
	for i, p := range b.ExcludedPhones {
		v.Field(fmt.Sprintf("excluded_phones[%d]", i), p, common.TenDigitPhone)
	}
	return v.Error()
}

// Vocabulary compiles the configured equipment table.
func (b *Business) Vocabulary() (*equipment.Vocabulary, error) {
	return equipment.New(b.Equipment)
}

// RosterNames returns the canonical rep names in roster order.
func (b *Business) RosterNames() []string {
	names := make([]string, len(b.Reps))
	for i, r := range b.Reps {
		names[i] = r.Name
	}
	return names
}

// LedgerFor resolves a canonical rep name to its ledger ID.
func (b *Business) LedgerFor(name string) (string, bool) {
	for _, r := range b.Reps {
		if r.Name == name {
			return r.LedgerID, true
		}
	}
	return "", false
}

// DefaultBusiness returns the production defaults.
func DefaultBusiness() *Business {
	return &Business{
		Reps: []SalesRep{
			{Name: "Adriana Botero", LedgerID: "rep-adriana-botero"},
			{Name: "Alessandro Crisci", LedgerID: "rep-alessandro-crisci"},
			{Name: "Bryan Gonzalez", LedgerID: "rep-bryan-gonzalez"},
			{Name: "Carlo Dalelio", LedgerID: "rep-carlo-dalelio"},
			{Name: "Daniel Chuecos", LedgerID: "rep-daniel-chuecos"},
			{Name: "David Rodriguez", LedgerID: "rep-david-rodriguez"},
			{Name: "Edgar Lantigua", LedgerID: "rep-edgar-lantigua"},
			{Name: "Ennio Zucchino", LedgerID: "rep-ennio-zucchino"},
			{Name: "Estefania Nieto", LedgerID: "rep-estefania-nieto"},
			{Name: "Facundo Alvarez Nunez", LedgerID: "rep-facundo-alvarez"},
			{Name: "Fernando Falco", LedgerID: "rep-fernando-falco"},
			{Name: "Hamelet Louis", LedgerID: "rep-hamelet-louis"},
			{Name: "Henry Velasco", LedgerID: "rep-henry-velasco"},
			{Name: "Lisandra", LedgerID: "rep-lisandra"},
			{Name: "Marisol Medina", LedgerID: "rep-marisol-medina"},
			{Name: "Rachel Miranda", LedgerID: "rep-rachel-miranda"},
			{Name: "Rocny Rodriguez", LedgerID: "rep-rocny-rodriguez"},
			{Name: "Romel Duran", LedgerID: "rep-romel-duran"},
			{Name: "Shayne Luque", LedgerID: "rep-shayne-luque"},
			{Name: "Ulises Delgado", LedgerID: "rep-ulises-delgado"},
			{Name: "Yoan Bonet", LedgerID: "rep-yoan-bonet"},
		},
		MainLedgerID:   "main",
		BackupLedgerID: "backup",
		Equipment:      equipment.DefaultEntries(),
		ExcludedPhones: []string{"3053636966"},
		MatchThreshold: 70,
	}
}
