package contract

// Record is the canonical merged view of one contract document. It is built
// once by the hybrid reconciler and never mutated afterwards; pricing and
// ledger routing only read it. Missing fields are empty strings, except
// Equipment which the reconciler always backfills with the baseline code.
type Record struct {
	SalesRep        string `json:"sales_rep"`
	CustomerName    string `json:"customer_name"`
	PhoneNumber     string `json:"phone_number"`
	CustomerAddress string `json:"customer_address"`
	Equipment       string `json:"equipment"`
	SoldPrice       string `json:"sold_price"`
	Date            string `json:"date"`
	LeadPO          string `json:"lead_po"`
	FinBy           string `json:"fin_by"`
}

// IsEmpty reports whether no field carries a value. Used to detect an
// AI pass that degraded to the all-empty schema.
func (r Record) IsEmpty() bool {
	return r.SalesRep == "" &&
		r.CustomerName == "" &&
		r.PhoneNumber == "" &&
		r.CustomerAddress == "" &&
		r.Equipment == "" &&
		r.SoldPrice == "" &&
		r.Date == "" &&
		r.LeadPO == "" &&
		r.FinBy == ""
}
