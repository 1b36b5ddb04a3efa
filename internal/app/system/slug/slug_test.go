package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vendre sa voiture rapidement", "vendre-sa-voiture-rapidement"},
		{"Reprise d'une voiture électrique", "reprise-d-une-voiture-electrique"},
		{"  Crit'Air & ZFE : ce qui change en 2026 !  ", "crit-air-zfe-ce-qui-change-en-2026"},
		{"Ça coûte combien ?", "ca-coute-combien"},
		{"---", ""},
		{"", ""},
		{"Œuvre", "uvre"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMake_SameSlugForEquivalentTitles(t *testing.T) {
	a := Make("Voiture Électrique")
	b := Make("voiture electrique")
	if a != b {
		t.Errorf("Make should fold case and accents: %q != %q", a, b)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Conseils", "conseils"},
		{"Réglementation", "reglementation"},
		{"Vente & Achat", "vente & achat"},
	}
	for _, tt := range tests {
		if got := Category(tt.in); got != tt.want {
			t.Errorf("Category(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
