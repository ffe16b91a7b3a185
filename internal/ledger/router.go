package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joseph-ayodele/contracts-ledger/constants"
	"github.com/joseph-ayodele/contracts-ledger/internal/config"
	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/pricing"
)

// Router decides which ledgers a reconciled record lands in and writes the
// rows. Every write goes through a duplicate gate keyed on the layout's
// identity column, so re-processing a document is a no-op. The gate is a
// read-then-append across two Store calls; a per-ledger lock makes that
// sequence atomic, so concurrent intake workers cannot interleave check
// and append on the same ledger.
type Router struct {
	store  Store
	biz    *config.Business
	pricer *pricing.Engine
	log    *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRouter(store Store, biz *config.Business, pricer *pricing.Engine, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		store:  store,
		biz:    biz,
		pricer: pricer,
		log:    logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *Router) lockFor(ledgerID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[ledgerID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[ledgerID] = l
	}
	return l
}

// Result reports where a record went. Skipped counts duplicate-suppressed
// writes; a fully duplicate record yields Appended 0 and no error.
type Result struct {
	RepLedgerID string
	Matched     bool
	Appended    int
	Skipped     int
}

// Route writes rec to its destinations. matchedRep is the canonical roster
// name resolved by the identity matcher, or "" when no tier fired:
//
//   - matched: rep ledger (keyed on phone) + main ledger (keyed on Lead/PO)
//   - unmatched: backup ledger (keyed on phone, raw name preserved in the
//     trailing column) + main ledger with the rep column reading UNKNOWN
//
// contractLink is stored verbatim; it is the path or URL of the source
// document.
func (r *Router) Route(ctx context.Context, rec contract.Record, matchedRep, contractLink string) (Result, error) {
	res := Result{Matched: matchedRep != ""}
	start := time.Now()

	repName := matchedRep
	if matchedRep != "" {
		ledgerID, ok := r.biz.LedgerFor(matchedRep)
		if !ok {
			return res, fmt.Errorf("rep %q matched but has no ledger configured", matchedRep)
		}
		res.RepLedgerID = ledgerID
		row := repRow(rec, contractLink)
		if err := r.append(ctx, &res, ledgerID, constants.RepLedgerHeaders, row,
			constants.RepLedgerPhoneColumn, rec.PhoneNumber); err != nil {
			return res, err
		}
	} else {
		repName = constants.UnmatchedRepLabel
		res.RepLedgerID = r.biz.BackupLedgerID
		row := append(repRow(rec, contractLink), rec.SalesRep)
		if err := r.append(ctx, &res, r.biz.BackupLedgerID, constants.BackupLedgerHeaders, row,
			constants.BackupLedgerPhoneColumn, rec.PhoneNumber); err != nil {
			return res, err
		}
	}

	main := r.mainRow(rec, repName, contractLink)
	if err := r.append(ctx, &res, r.biz.MainLedgerID, constants.MainLedgerHeaders, main,
		constants.MainLedgerLeadPOColumn, rec.LeadPO); err != nil {
		return res, err
	}

	r.log.Info("ledger.route.ok",
		"rep", repName,
		"rep_ledger", res.RepLedgerID,
		"appended", res.Appended,
		"skipped", res.Skipped,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (r *Router) append(ctx context.Context, res *Result, ledgerID string, headers, row []string, keyCol int, key string) error {
	l := r.lockFor(ledgerID)
	l.Lock()
	defer l.Unlock()

	if err := r.store.EnsureHeaders(ctx, ledgerID, headers); err != nil {
		return fmt.Errorf("ensure headers %s: %w", ledgerID, err)
	}
	dup, err := r.isDuplicate(ctx, ledgerID, keyCol, key)
	if err != nil {
		return fmt.Errorf("duplicate check %s: %w", ledgerID, err)
	}
	if dup {
		res.Skipped++
		r.log.Info("ledger.route.duplicate_skipped", "ledger", ledgerID, "key", key)
		return nil
	}
	if err := r.store.AppendRow(ctx, ledgerID, row); err != nil {
		return fmt.Errorf("append %s: %w", ledgerID, err)
	}
	res.Appended++
	return nil
}

// isDuplicate reports whether key already occupies keyCol in an existing
// row. An empty key never counts as a duplicate: a record with no phone
// (or no Lead/PO) must still be written, or it would silently vanish.
func (r *Router) isDuplicate(ctx context.Context, ledgerID string, keyCol int, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, nil
	}
	rows, err := r.store.ReadAll(ctx, ledgerID)
	if err != nil {
		return false, err
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if keyCol < len(row) && strings.TrimSpace(row[keyCol]) == key {
			return true, nil
		}
	}
	return false, nil
}

// repRow builds the shared rep/backup layout. Installed, Comments,
// Commission, and Commission Date start blank and are filled in by hand
// later; Fin Status always starts pending.
func repRow(rec contract.Record, contractLink string) []string {
	return []string{
		rec.Date,
		rec.CustomerName,
		rec.PhoneNumber,
		rec.CustomerAddress,
		rec.Equipment,
		rec.SoldPrice,
		"", // Installed
		rec.FinBy,
		constants.FinStatusPending,
		"", // Comments
		"", // Commission
		"", // Commission Date
		contractLink,
	}
}

func (r *Router) mainRow(rec contract.Record, repName, contractLink string) []string {
	b := r.pricer.Price(rec)
	return []string{
		rec.Date,
		repName,
		rec.CustomerName,
		rec.Equipment,
		rec.SoldPrice,
		pricing.FormatCurrency(b.EquipmentCost),
		pricing.FormatCurrency(b.MarketingFee),
		pricing.FormatCurrency(b.Profit),
		rec.LeadPO,
		contractLink,
	}
}
