package extract

import (
	"regexp"
	"strings"
)

// namePattern matches "Capitalized Capitalized [Capitalized]" — two or
// three words each starting uppercase, the shape of a filled-in name on
// these forms.
var namePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`)

// Field labels and boilerplate that namePattern also matches. Anything on
// this list is never a salesperson.
var nonNamePhrases = map[string]struct{}{
	"Salesperson Name":    {},
	"Sales Person Name":   {},
	"Customer Name":       {},
	"Customer Last Name":  {},
	"Customer First Name": {},
	"Customer Last":       {},
	"Customer First":      {},
	"Last Name":           {},
	"First Name":          {},
	"Home Phone":          {},
	"Cell Phone":          {},
	"Work Phone":          {},
	"Miami Water":         {},
	"Water Conditioning":  {},
	"Contract Price":      {},
	"Lead Po":             {},
}

// Placeholder label lines: when the marker line is literally the empty
// label, the handwritten name sits on a neighboring line.
var repPlaceholders = map[string]struct{}{
	"Salesperson Name":    {},
	"Sales Person Name":   {},
	"Nombre del vendedor": {},
}

func repMarkers(lang Language) []string {
	if lang == Spanish {
		return []string{"Nombre del vendedor", "vendedor"}
	}
	return []string{"Salesperson Name", "Sales Person", "Salesperson"}
}

// salesRepFromRoster returns a roster name appearing verbatim anywhere in
// the text. Highest precedence: a known name beats every layout heuristic.
func (e *Extractor) salesRepFromRoster(d *document) (string, bool) {
	for _, name := range e.roster {
		if strings.Contains(d.text, name) {
			return name, true
		}
	}
	return "", false
}

// salesRepNearMarker scans a window of lines around the salesperson label
// for a capitalized-name token sequence, rejecting known non-name phrases.
func (e *Extractor) salesRepNearMarker(d *document) (string, bool) {
	markers := repMarkers(d.lang)

	limit := len(d.lines)
	if limit > 100 {
		limit = 100
	}
	for i := 0; i < limit; i++ {
		line := d.lines[i]
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

		var candidates []int
		if _, placeholder := repPlaceholders[strings.TrimSpace(line)]; placeholder {
			// Bare label: the name is on a neighbor, above first.
			candidates = append(candidates, d.window(i-3, i, -1)...)
			candidates = append(candidates, d.window(i+1, i+6, -1)...)
		} else {
			// Label plus content: same line first, then neighbors.
			candidates = append(candidates, i)
			candidates = append(candidates, d.window(i-2, i, -1)...)
			candidates = append(candidates, d.window(i+1, i+4, -1)...)
		}

		for _, j := range candidates {
			if name, ok := candidateName(d.lines[j]); ok {
				return name, true
			}
		}
	}
	return "", false
}

func candidateName(line string) (string, bool) {
	m := namePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if _, bad := nonNamePhrases[name]; bad {
		return "", false
	}
	words := strings.Fields(name)
	if len(words) < 2 {
		return "", false
	}
	for _, w := range words {
		if w[0] < 'A' || w[0] > 'Z' {
			return "", false
		}
	}
	return name, true
}

// Customer-name labels, per language. The form prints the labels on one
// line and the handwritten "LastName FirstName" on the line above; the
// record wants "FirstName LastName".
func customerNameFromLabels(d *document) (string, bool) {
	lastLabel, firstLabel := "Customer Last Name", "Customer First Name"
	if d.lang == Spanish {
		lastLabel, firstLabel = "Apellido del Cliente", "Nombre del Cliente"
	}
	for i, line := range d.lines {
		if i == 0 || !strings.Contains(line, lastLabel) || !strings.Contains(line, firstLabel) {
			continue
		}
		parts := strings.Fields(strings.TrimSpace(d.lines[i-1]))
		if len(parts) >= 2 {
			return parts[1] + " " + parts[0], true
		}
	}
	return "", false
}
