// Package ledger appends reconciled contracts to their destination
// ledgers: the matched rep's sheet plus the main sheet, or the backup
// sheet when no rep matched. Ledgers are append-only; rows are never
// updated or removed here.
package ledger

import "context"

// Store is one ledger backend. A ledger ID is an opaque handle (a sheet
// name for the workbook store, a partition key for the database store).
type Store interface {
	// EnsureHeaders creates the ledger with the given header row when it
	// does not exist yet. Existing ledgers are left untouched even if
	// their header row differs.
	EnsureHeaders(ctx context.Context, ledgerID string, headers []string) error
	// AppendRow appends one row after the last occupied row.
	AppendRow(ctx context.Context, ledgerID string, row []string) error
	// ReadAll returns every row, header included, in sheet order. A
	// missing ledger reads as empty, not as an error.
	ReadAll(ctx context.Context, ledgerID string) ([][]string, error)
}
