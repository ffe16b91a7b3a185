package llm

import (
	"strings"

	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

// BuildSystemPrompt is the extraction instruction set. The equipment
// mapping guide is generated from the live vocabulary so config changes
// reach the model without prompt edits.
func BuildSystemPrompt(vocab *equipment.Vocabulary) string {
	var b strings.Builder
	b.WriteString("You are a contract data extraction specialist for bilingual (English/Spanish) ")
	b.WriteString("water treatment sales contracts. Extract the requested fields from the document text. ")
	b.WriteString("Return ONLY JSON matching the provided schema; no markdown, no commentary. ")
	b.WriteString("A field you cannot find is the empty string, never null.\n\n")

	b.WriteString("Field rules:\n")
	b.WriteString("- sales_rep: the salesperson's real name near 'Salesperson Name' / 'Nombre del vendedor'. ")
	b.WriteString("Never return the placeholder label itself.\n")
	b.WriteString("- customer_name: 'FirstName LastName' order, even though the form prints last name first.\n")
	b.WriteString("- phone_number: exactly 10 digits, no separators.\n")
	b.WriteString("- customer_address: 'Street, City, ST ZIP'.\n")
	b.WriteString("- sold_price: leading $, no thousands separators (e.g. \"$18995\").\n")
	b.WriteString("- date: MM/DD/YYYY.\n")
	b.WriteString("- lead_po: the lead or PO identifier, usually prefixed F or ORD.\n")
	b.WriteString("- fin_by: financing company near 'Payment Method' / 'Meta de Pago' ")
	b.WriteString("(e.g. ISPC, Goodleap, Ygrene, Foundation, Cash).\n\n")

	b.WriteString("Equipment mapping guide (map any mention, in either language, to the canonical code):\n")
	for _, e := range vocab.Entries() {
		b.WriteString("- ")
		b.WriteString(strings.Join(e.Variants, ", "))
		b.WriteString(" -> ")
		b.WriteString(e.Code)
		b.WriteString("\n")
	}
	b.WriteString("\nEquipment rules:\n")
	b.WriteString("- equipment: ALL codes found, space-separated, searching the entire document.\n")
	b.WriteString("- EC5 and TC are both water softeners; a contract has one or the other, never both. ")
	b.WriteString("If both seem present, keep the one in the Model # section (EC5 is the premium unit).\n")
	b.WriteString("- Equipment is always present on these contracts. If nothing is identifiable, use TC.\n")
	return b.String()
}

// BuildUserPrompt wraps the document text with its hints.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if req.FilenameHint != "" {
		b.WriteString("Filename: ")
		b.WriteString(req.FilenameHint)
		b.WriteString("\n")
	}
	if req.Language != "" {
		b.WriteString("Detected language: ")
		b.WriteString(req.Language)
		b.WriteString("\n")
	}
	b.WriteString("\nContract text:\n")
	const maxChars = 12000
	if len(req.DocumentText) > maxChars {
		b.WriteString(req.DocumentText[:maxChars])
	} else {
		b.WriteString(req.DocumentText)
	}
	return b.String()
}
