package equipment

import "strings"

// EC5 and TC are both water softeners; a contract carries one or the
// other, never both. EC5 is the premium unit and wins when both appear.
const (
	premiumSoftener  = "EC5"
	standardSoftener = "TC"
)

// Normalize parses a free-text equipment blob into canonical codes:
// variant recognition in vocabulary order, deduplicated, then the softener
// exclusivity rule. Returns nil when nothing is recognized.
func (v *Vocabulary) Normalize(blob string) []string {
	return ApplyExclusivity(v.Recognize(blob))
}

// NormalizeString is Normalize joined into the space-separated ledger form.
func (v *Vocabulary) NormalizeString(blob string) string {
	return strings.Join(v.Normalize(blob), " ")
}

// ApplyExclusivity drops the standard softener when the premium one is
// present. Order of the remaining codes is preserved.
func ApplyExclusivity(codes []string) []string {
	premium := false
	for _, c := range codes {
		if c == premiumSoftener {
			premium = true
			break
		}
	}
	if !premium {
		return codes
	}
	out := codes[:0:0]
	for _, c := range codes {
		if c != standardSoftener {
			out = append(out, c)
		}
	}
	return out
}

// ApplyExclusivityString applies the softener rule to a space-separated
// code string without re-running variant recognition. Used by the hybrid
// reconciler, whose final string may contain AI tokens outside the
// vocabulary that must survive untouched.
func ApplyExclusivityString(s string) string {
	return strings.Join(ApplyExclusivity(strings.Fields(s)), " ")
}
