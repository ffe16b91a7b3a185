package extract

import (
	"regexp"
	"strings"
)

var (
	phonePattern      = regexp.MustCompile(`(\d{3})[-\s]?(\d{3})[-\s]?(\d{4})`)
	phoneEmailPattern = regexp.MustCompile(`(\d{3})[-\s]?(\d{3})[-\s]?(\d{4})\s+[a-z0-9.]+@[a-z]+\.com`)
)

func phoneMarkers(lang Language) []string {
	if lang == Spanish {
		return []string{"Casa #", "Trabajo #", "Móvil #"}
	}
	return []string{"Home Phone#", "Work Phone#", "Cell Phone#"}
}

// phoneNearMarker finds a 10-digit number in a small window around a phone
// label. English forms tend to print the number before the label, Spanish
// after; the symmetric window covers both.
func (e *Extractor) phoneNearMarker(d *document) (string, bool) {
	markers := phoneMarkers(d.lang)
	for i, line := range d.lines {
		hit := false
		for _, m := range markers {
			if strings.Contains(line, m) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for _, j := range d.window(i-2, i+3, -1) {
			if p, ok := e.phoneIn(d.lines[j]); ok {
				return p, true
			}
		}
	}
	return "", false
}

// phoneBeforeEmail is the fallback: a phone number immediately followed by
// an email address anywhere in the document is the customer contact line.
func (e *Extractor) phoneBeforeEmail(d *document) (string, bool) {
	m := phoneEmailPattern.FindStringSubmatch(d.text)
	if m == nil {
		return "", false
	}
	p := m[1] + m[2] + m[3]
	if _, denied := e.excludedPhones[p]; denied {
		return "", false
	}
	return p, true
}

func (e *Extractor) phoneIn(line string) (string, bool) {
	m := phonePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	p := m[1] + m[2] + m[3]
	if _, denied := e.excludedPhones[p]; denied {
		return "", false
	}
	return p, true
}

// Address patterns for the two street shapes these forms produce:
// "16100 SW 102 CT Miami FL 33157" and "117 NE 24th Terr Homestead FL 33033".
var (
	// Separators accept an optional comma so a formatted address re-parses
	// to the same components.
	addressGridPattern    = regexp.MustCompile(`(\d+\s+[A-Z]{1,2}\s+\d+\s+[A-Z]{2,3})(?:,\s*|\s+)(\w+)(?:,\s*|\s+)(FL)\s+(\d{5})`)
	addressOrdinalPattern = regexp.MustCompile(`(\d+\s+[A-Z]{1,2}\s+\d+(?:st|nd|rd|th)\s+\w+)(?:,\s*|\s+)(\w+)(?:,\s*|\s+)(FL)\s+(\d{5})`)
	streetPrefixPattern   = regexp.MustCompile(`(\d+\s+[A-Z]{1,2}\s+\d+(?:st|nd|rd|th)?\s+[A-Z]{2,3})\s`)
	cityStateZipPattern   = regexp.MustCompile(`(\w+)\s+(FL)\s+(\d{5})`)
)

// addressStructured tries the full single-match patterns against the whole
// text and formats the canonical "Street, City, ST ZIP" line.
func addressStructured(d *document) (string, bool) {
	for _, re := range []*regexp.Regexp{addressGridPattern, addressOrdinalPattern} {
		if m := re.FindStringSubmatch(d.text); m != nil {
			return formatAddress(m[1], m[2], m[3], m[4]), true
		}
	}
	return "", false
}

// addressLinePair pairs a street-looking prefix on one line with a
// "City FL ZIP" suffix on the same or next line.
func addressLinePair(d *document) (string, bool) {
	for i, line := range d.lines {
		sm := streetPrefixPattern.FindStringSubmatch(line)
		if sm == nil {
			continue
		}
		hi := i + 2
		if hi > len(d.lines) {
			hi = len(d.lines)
		}
		for j := i; j < hi; j++ {
			if cm := cityStateZipPattern.FindStringSubmatch(d.lines[j]); cm != nil {
				return formatAddress(sm[1], cm[1], cm[2], cm[3]), true
			}
		}
	}
	return "", false
}

func formatAddress(street, city, state, zip string) string {
	return street + ", " + city + ", " + state + " " + zip
}
