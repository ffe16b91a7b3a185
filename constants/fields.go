package constants

// Canonical contract field keys. These are also the JSON keys the AI pass
// must return, so extractor, reconciler, and ledger rows agree on one shape.
const (
	FieldSalesRep        = "sales_rep"
	FieldCustomerName    = "customer_name"
	FieldPhoneNumber     = "phone_number"
	FieldCustomerAddress = "customer_address"
	FieldEquipment       = "equipment"
	FieldSoldPrice       = "sold_price"
	FieldDate            = "date"
	FieldLeadPO          = "lead_po"
	FieldFinBy           = "fin_by"
)

// ContractFieldKeys lists every contract field in canonical order.
var ContractFieldKeys = []string{
	FieldSalesRep,
	FieldCustomerName,
	FieldPhoneNumber,
	FieldCustomerAddress,
	FieldEquipment,
	FieldSoldPrice,
	FieldDate,
	FieldLeadPO,
	FieldFinBy,
}

// DefaultEquipmentCode is appended when neither extraction pass finds
// equipment. Contracts always include at least the basic conditioner.
const DefaultEquipmentCode = "TC"

// FinStatusPending is the initial financing status written to rep and
// backup ledger rows.
const FinStatusPending = "pending"

// UnmatchedRepLabel is written to the main ledger when no roster entry
// could be resolved for the extracted salesperson name.
const UnmatchedRepLabel = "UNKNOWN"
