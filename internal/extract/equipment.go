package extract

import (
	"regexp"
	"strings"
)

// Tier 1: flexible "Model #" capture. Real forms separate codes with any
// mix of commas, dashes, periods, and spaces ("Tc,QRs,ro,alk",
// "TC - QRS - RO - CS", "EC5,QRs,ro,ALK,cs.am").
var (
	modelBlobPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Modelo #\s+([A-Za-z0-9,\s.\-]+?)(?:\n|Sistema)`),
		regexp.MustCompile(`(?i)Model #\s+([A-Za-z0-9,\s.\-]+?)(?:\n|System)`),
	}
	codeSeparator = regexp.MustCompile(`[\s,.\-]+`)
)

// Tier 2: strict canonical phrase, plus a looser "Model #" capture that
// stops at the next prose word.
var (
	canonicalPhraseES = regexp.MustCompile(`Sistema de acondicionamiento de agua\s+Ctd\s+\d+\s+Modelo #\s+([A-Z0-9\s]+)`)
	canonicalPhraseEN = regexp.MustCompile(`Water Conditioning System\s+Qty\s+\d+\s+Model #\s+([A-Z0-9\s]+)`)

	looseModelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Model #\s+([A-Z0-9][A-Z0-9\s]+?)(?:\n|$|[A-Z][a-z])`),
		regexp.MustCompile(`Modelo #\s+([A-Z0-9][A-Z0-9\s]+?)(?:\n|$|[A-Z][a-z])`),
	}
)

// Anchors that mark the equipment section of the form.
var equipmentAnchors = []string{"MODEL #", "MODELO #", "WATER CONDITIONING", "ACONDICIONAMIENTO"}

// modelNumberBlob captures the code list after "Model #"/"Modelo #" and
// normalizes separators, keeping tokens of two or more characters.
func modelNumberBlob(d *document) (string, bool) {
	for _, re := range modelBlobPatterns {
		m := re.FindStringSubmatch(d.text)
		if m == nil {
			continue
		}
		var codes []string
		for _, tok := range codeSeparator.Split(strings.TrimSpace(m[1]), -1) {
			tok = strings.ToUpper(strings.TrimSpace(tok))
			if len(tok) >= 2 {
				codes = append(codes, tok)
			}
		}
		if len(codes) > 0 {
			return strings.Join(codes, " "), true
		}
	}
	return "", false
}

// canonicalModelPhrase tries the strict printed phrase for the detected
// language, then the looser model capture.
func (e *Extractor) canonicalModelPhrase(d *document) (string, bool) {
	strict := canonicalPhraseEN
	if d.lang == Spanish {
		strict = canonicalPhraseES
	}
	if m := strict.FindStringSubmatch(d.text); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s, true
		}
	}
	for _, re := range looseModelPatterns {
		if m := re.FindStringSubmatch(d.text); m != nil {
			s := strings.TrimSpace(m[1])
			if len(s) > 1 && !strings.HasPrefix(s, "Miami") {
				return s, true
			}
		}
	}
	return "", false
}

// equipmentSectionScan is the last tier: locate the equipment section (a
// window around the first anchor line, else the whole document) and run
// the vocabulary's variant recognition over it.
func (e *Extractor) equipmentSectionScan(d *document) (string, bool) {
	section := d.text
	for i, line := range d.lines {
		up := strings.ToUpper(line)
		anchored := false
		for _, a := range equipmentAnchors {
			if strings.Contains(up, a) {
				anchored = true
				break
			}
		}
		if !anchored {
			continue
		}
		lo, hi := i-5, i+15
		if lo < 0 {
			lo = 0
		}
		if hi > len(d.lines) {
			hi = len(d.lines)
		}
		section = strings.Join(d.lines[lo:hi], "\n")
		break
	}
	codes := e.vocab.Normalize(section)
	if len(codes) == 0 {
		return "", false
	}
	return strings.Join(codes, " "), true
}
