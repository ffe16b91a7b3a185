package constants

// Column headers for the three ledger layouts. Stable: duplicate detection
// addresses columns by index, so order changes here are breaking.

// RepLedgerHeaders is the layout of each salesperson's ledger.
var RepLedgerHeaders = []string{
	"Date",
	"Customer Name",
	"Phone Number",
	"Customer Address",
	"Equipment",
	"Sold Price",
	"Installed",
	"Fin By",
	"Fin Status",
	"Comments",
	"Commission",
	"Commission Date",
	"Contract",
}

// MainLedgerHeaders is the layout of the company-wide ledger, including the
// computed cost and profit columns.
var MainLedgerHeaders = []string{
	"Date",
	"Sales Rep",
	"Customer Name",
	"Equipment",
	"Sale Price",
	"Equipment Cost",
	"Marketing Fee (10%)",
	"Profit",
	"Lead/PO#",
	"Contract Link",
}

// BackupLedgerHeaders is the rep layout plus the raw (unmatched) rep name.
var BackupLedgerHeaders = append(append([]string{}, RepLedgerHeaders...), "Sales Rep Name")

// Duplicate-check column indexes (0-based) per ledger layout.
const (
	RepLedgerPhoneColumn    = 2 // "Phone Number"
	MainLedgerLeadPOColumn  = 8 // "Lead/PO#"
	BackupLedgerPhoneColumn = 2 // "Phone Number"
)
