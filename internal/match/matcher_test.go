package match

import "testing"

var roster = []string{
	"Bryan Gonzalez",
	"Carlo Dalelio",
	"Rocny Rodriguez",
	"Walter Pena",
	"Lisandra",
}

func TestMatch_Tiers(t *testing.T) {
	m := New(roster, 0, nil)
	tests := []struct {
		name      string
		in        string
		want      string
		wantScore int
	}{
		{"exact", "Bryan Gonzalez", "Bryan Gonzalez", ScoreExact},
		{"exact case-insensitive", "bryan gonzalez", "Bryan Gonzalez", ScoreExact},
		{"swapped order is token-sort 100", "Gonzalez Bryan", "Bryan Gonzalez", 100},
		{"typo within threshold", "Bryan Gonzales", "Bryan Gonzalez", TokenSortRatio("Bryan Gonzales", "Bryan Gonzalez")},
		{"first name only", "Walter", "Walter Pena", ScoreFirstName},
		{"last name with wrong first name", "Pedro Dalelio", "Carlo Dalelio", ScoreLastName},
		{"bare last name matches nothing", "Dalelio", "", 0},
		{"single-token roster entry", "Lisandra", "Lisandra", ScoreExact},
		{"no match", "Jonathan Smith", "", 0},
		{"empty input", "  ", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score := m.Match(tt.in)
			if got != tt.want || score != tt.wantScore {
				t.Errorf("Match(%q) = (%q, %d), want (%q, %d)", tt.in, got, score, tt.want, tt.wantScore)
			}
		})
	}
}

func TestMatch_TypoClearsThreshold(t *testing.T) {
	if r := TokenSortRatio("Bryan Gonzales", "Bryan Gonzalez"); r < DefaultThreshold {
		t.Fatalf("one-letter typo ratio = %d, expected at least %d", r, DefaultThreshold)
	}
}

func TestMatch_LastNameTierRequiresMultiTokenInput(t *testing.T) {
	m := New([]string{"Carlo Dalelio"}, 0, nil)
	if got, score := m.Match("Dalelio"); got != "" || score != 0 {
		t.Errorf("Match(%q) = (%q, %d), want no match for a bare surname", "Dalelio", got, score)
	}
	if got, score := m.Match("Pedro Dalelio"); got != "Carlo Dalelio" || score != ScoreLastName {
		t.Errorf("Match(%q) = (%q, %d), want (%q, %d)", "Pedro Dalelio", got, score, "Carlo Dalelio", ScoreLastName)
	}
}

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Bryan Gonzalez", "Gonzalez Bryan", 100},
		{"", "Bryan", 0},
		{"Bryan", "", 0},
	}
	for _, tt := range tests {
		if got := TokenSortRatio(tt.a, tt.b); got != tt.want {
			t.Errorf("TokenSortRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	if got := TokenSortRatio("Rocny Rodriguez", "Rocky Rodriguez"); got <= 80 {
		t.Errorf("near-identical names ratio = %d, want > 80", got)
	}
}
