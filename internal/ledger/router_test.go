package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/joseph-ayodele/contracts-ledger/constants"
	"github.com/joseph-ayodele/contracts-ledger/internal/config"
	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/pricing"
)

// fakeStore is an in-memory Store for router tests.
type fakeStore struct {
	mu      sync.Mutex
	ledgers map[string][][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{ledgers: make(map[string][][]string)}
}

func (f *fakeStore) EnsureHeaders(_ context.Context, id string, headers []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ledgers[id]; !ok {
		f.ledgers[id] = [][]string{headers}
	}
	return nil
}

func (f *fakeStore) AppendRow(_ context.Context, id string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ledgers[id] = append(f.ledgers[id], row)
	return nil
}

func (f *fakeStore) ReadAll(_ context.Context, id string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledgers[id], nil
}

func testRouter(store Store) *Router {
	return NewRouter(store, config.DefaultBusiness(), pricing.New(nil), nil)
}

func sampleRecord() contract.Record {
	return contract.Record{
		SalesRep:        "Bryan Gonzalez",
		CustomerName:    "Xiomara Suarez",
		PhoneNumber:     "3052909033",
		CustomerAddress: "16100 SW 102 CT, Miami, FL 33157",
		Equipment:       "EC5 QRS RO",
		SoldPrice:       "$10995",
		Date:            "03/15/2024",
		LeadPO:          "F00123456",
		FinBy:           "ISPC",
	}
}

func TestRoute_MatchedRep(t *testing.T) {
	store := newFakeStore()
	res, err := testRouter(store).Route(context.Background(), sampleRecord(), "Bryan Gonzalez", "/contracts/suarez.pdf")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !res.Matched || res.RepLedgerID != "rep-bryan-gonzalez" || res.Appended != 2 || res.Skipped != 0 {
		t.Fatalf("result = %+v", res)
	}

	rep := store.ledgers["rep-bryan-gonzalez"]
	if len(rep) != 2 {
		t.Fatalf("rep ledger rows = %d, want header + 1", len(rep))
	}
	row := rep[1]
	if row[constants.RepLedgerPhoneColumn] != "3052909033" {
		t.Errorf("phone cell = %q", row[constants.RepLedgerPhoneColumn])
	}
	if row[8] != constants.FinStatusPending {
		t.Errorf("fin status = %q, want pending", row[8])
	}
	if row[12] != "/contracts/suarez.pdf" {
		t.Errorf("contract cell = %q", row[12])
	}

	main := store.ledgers["main"]
	if len(main) != 2 {
		t.Fatalf("main ledger rows = %d, want header + 1", len(main))
	}
	mrow := main[1]
	if mrow[1] != "Bryan Gonzalez" {
		t.Errorf("main rep cell = %q", mrow[1])
	}
	if mrow[5] != "$1,615.42" || mrow[6] != "$1,099.50" || mrow[7] != "$8,280.08" {
		t.Errorf("money cells = %q %q %q", mrow[5], mrow[6], mrow[7])
	}
	if mrow[constants.MainLedgerLeadPOColumn] != "F00123456" {
		t.Errorf("lead/po cell = %q", mrow[constants.MainLedgerLeadPOColumn])
	}
	if _, ok := store.ledgers["backup"]; ok {
		t.Error("backup ledger written for matched rep")
	}
}

func TestRoute_UnmatchedGoesToBackup(t *testing.T) {
	store := newFakeStore()
	rec := sampleRecord()
	rec.SalesRep = "Jonathan Smith"

	res, err := testRouter(store).Route(context.Background(), rec, "", "/contracts/suarez.pdf")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if res.Matched || res.RepLedgerID != "backup" || res.Appended != 2 {
		t.Fatalf("result = %+v", res)
	}

	backup := store.ledgers["backup"]
	if len(backup) != 2 {
		t.Fatalf("backup rows = %d", len(backup))
	}
	row := backup[1]
	if got := row[len(row)-1]; got != "Jonathan Smith" {
		t.Errorf("raw rep name cell = %q", got)
	}
	if len(row) != len(constants.BackupLedgerHeaders) {
		t.Errorf("backup row width = %d, want %d", len(row), len(constants.BackupLedgerHeaders))
	}
	if mrow := store.ledgers["main"][1]; mrow[1] != constants.UnmatchedRepLabel {
		t.Errorf("main rep cell = %q, want %q", mrow[1], constants.UnmatchedRepLabel)
	}
}

func TestRoute_DuplicateSuppressed(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store)
	rec := sampleRecord()

	if _, err := r.Route(context.Background(), rec, "Bryan Gonzalez", "a.pdf"); err != nil {
		t.Fatalf("first route: %v", err)
	}
	res, err := r.Route(context.Background(), rec, "Bryan Gonzalez", "a.pdf")
	if err != nil {
		t.Fatalf("second route: %v", err)
	}
	if res.Appended != 0 || res.Skipped != 2 {
		t.Fatalf("second route result = %+v, want all skipped", res)
	}
	if got := len(store.ledgers["rep-bryan-gonzalez"]); got != 2 {
		t.Errorf("rep rows after replay = %d, want 2", got)
	}
	if got := len(store.ledgers["main"]); got != 2 {
		t.Errorf("main rows after replay = %d, want 2", got)
	}
}

func TestRoute_ConcurrentDuplicateSuppressed(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store)
	rec := sampleRecord()

	// Two workers land the same contract at once. The per-ledger lock must
	// keep the check-then-append atomic: exactly one routing wins each
	// ledger, the other is suppressed.
	const workers = 2
	results := make([]Result, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Route(context.Background(), rec, "Bryan Gonzalez", "a.pdf")
		}(i)
	}
	wg.Wait()

	var appended, skipped int
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("route %d: %v", i, errs[i])
		}
		appended += results[i].Appended
		skipped += results[i].Skipped
	}
	if appended != 2 || skipped != 2 {
		t.Fatalf("appended = %d, skipped = %d; want 2 and 2", appended, skipped)
	}
	if got := len(store.ledgers["rep-bryan-gonzalez"]); got != 2 {
		t.Errorf("rep rows = %d, want header + 1", got)
	}
	if got := len(store.ledgers["main"]); got != 2 {
		t.Errorf("main rows = %d, want header + 1", got)
	}
}

func TestRoute_EmptyKeysNeverDuplicate(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store)
	rec := sampleRecord()
	rec.PhoneNumber = ""
	rec.LeadPO = ""

	for i := 0; i < 2; i++ {
		res, err := r.Route(context.Background(), rec, "Bryan Gonzalez", "a.pdf")
		if err != nil {
			t.Fatalf("route %d: %v", i, err)
		}
		if res.Appended != 2 || res.Skipped != 0 {
			t.Fatalf("route %d result = %+v, want both appended", i, res)
		}
	}
	if got := len(store.ledgers["main"]); got != 3 {
		t.Errorf("main rows = %d, want header + 2", got)
	}
}
