package extract

import "strings"

// Language is the detected contract language, which selects the marker
// phrases every field strategy anchors on.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// Marker phrases used only for language detection. Counting label hits is
// crude but the forms are boilerplate-heavy, so a handful of anchors is
// enough to separate the two layouts.
var (
	spanishMarkers = []string{"Apellido del Cliente", "Nombre del vendedor", "Precio del Contrato"}
	englishMarkers = []string{"Customer Last Name", "Salesperson Name", "Contract Price"}
)

// DetectLanguage classifies the full document text. Spanish wins only on a
// strict majority of marker hits; ties fall back to English.
func DetectLanguage(text string) Language {
	var es, en int
	for _, m := range spanishMarkers {
		if strings.Contains(text, m) {
			es++
		}
	}
	for _, m := range englishMarkers {
		if strings.Contains(text, m) {
			en++
		}
	}
	if es > en {
		return Spanish
	}
	return English
}
