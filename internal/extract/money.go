package extract

import (
	"regexp"
	"strings"
)

var (
	priceES = regexp.MustCompile(`Precio del Contrato:\s*\$\s*(\d+,?\d*)`)
	priceEN = regexp.MustCompile(`Contract Price:\s*\$\s*(\d+,?\d*)`)

	slashDatePattern = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)

	leadPOPattern      = regexp.MustCompile(`Lead/PO#\s+([A-Z0-9]+)`)
	bareLeadPattern    = regexp.MustCompile(`F(\d{8})`)
	spanishLeadPattern = regexp.MustCompile(`Cliente potencial[^\n]*?\n\s*([A-Z0-9]+)`)

	finByES = regexp.MustCompile(`Meta de Pago:([A-Za-z]+)`)
	finByEN = regexp.MustCompile(`Payment Method:\s*([A-Za-z]+)`)
)

// priceAfterAnchor captures the contract price after the language-specific
// anchor phrase. Thousands separators are stripped and a single leading $
// re-added. No fallback: a missing anchor means no price.
func priceAfterAnchor(d *document) (string, bool) {
	re := priceEN
	if d.lang == Spanish {
		re = priceES
	}
	m := re.FindStringSubmatch(d.text)
	if m == nil {
		return "", false
	}
	return "$" + strings.ReplaceAll(m[1], ",", ""), true
}

// firstSlashDate returns the first MM/DD/YYYY-shaped token anywhere in the
// document. Known approximation: with several dates on the form, first
// occurrence wins.
func firstSlashDate(d *document) (string, bool) {
	m := slashDatePattern.FindStringSubmatch(d.text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func leadPOMarker(d *document) (string, bool) {
	if m := leadPOPattern.FindStringSubmatch(d.text); m != nil {
		return m[1], true
	}
	return "", false
}

// bareLeadNumber matches the bare F-prefixed lead number and re-attaches
// the prefix the capture group drops.
func bareLeadNumber(d *document) (string, bool) {
	if m := bareLeadPattern.FindStringSubmatch(d.text); m != nil {
		return "F" + m[1], true
	}
	return "", false
}

func spanishLeadPhrase(d *document) (string, bool) {
	if m := spanishLeadPattern.FindStringSubmatch(d.text); m != nil {
		return m[1], true
	}
	return "", false
}

// financeCompany captures the bare word after the payment-method anchor.
func financeCompany(d *document) (string, bool) {
	re := finByEN
	if d.lang == Spanish {
		re = finByES
	}
	if m := re.FindStringSubmatch(d.text); m != nil {
		return m[1], true
	}
	return "", false
}
