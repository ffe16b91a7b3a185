package llm

// BuildContractJSONSchema returns the JSON-Schema (draft 2020-12 subset)
// for the nine-field contract record, as a generic map. It is sent to the
// model as an output constraint and used locally to validate the response.
// Every field is required; "not found" is the empty string, never null.
func BuildContractJSONSchema() map[string]any {
	str := func() map[string]any { return map[string]any{"type": "string"} }
	props := map[string]any{
		"sales_rep":        str(),
		"customer_name":    str(),
		"phone_number":     map[string]any{"type": "string", "pattern": `^(\d{10})?$`},
		"customer_address": str(),
		"equipment":        str(),
		"sold_price":       map[string]any{"type": "string", "pattern": `^(\$\d+(\.\d{1,2})?)?$`},
		"date":             map[string]any{"type": "string", "pattern": `^(\d{1,2}/\d{1,2}/\d{4})?$`},
		"lead_po":          str(),
		"fin_by":           str(),
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required": []string{
			"sales_rep", "customer_name", "phone_number", "customer_address",
			"equipment", "sold_price", "date", "lead_po", "fin_by",
		},
	}
}
