// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import "testing"

func TestLoad(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Names()) < 200 {
		t.Errorf("expected full ISO 3166 table, got %d names", len(s.Names()))
	}
}

func TestLookupISO3(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical name", "Nigeria", "NGA"},
		{"lowercase", "nigeria", "NGA"},
		{"surrounding whitespace", "  South Sudan ", "SSD"},
		{"common name", "Tanzania", "TZA"},
		{"comma-form canonical", "Congo, The Democratic Republic of the", "COD"},
		{"alpha-2 code", "cd", "COD"},
		{"alpha-3 code", "ner", "NER"},
		{"empty", "", ""},
		{"unknown", "NotACountry", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.LookupISO3(tt.in); got != tt.want {
				t.Errorf("LookupISO3(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsCountry(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsCountry("Burkina Faso") {
		t.Error("Burkina Faso should be a canonical name")
	}
	if s.IsCountry("burkina faso") {
		t.Error("IsCountry is exact-match; lowercase form should not match")
	}
	if s.IsCountry("Atlantis") {
		t.Error("Atlantis should not be a country")
	}
}

func TestIsLeadingToken(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	for _, tok := range []string{"Nigeria", "South", "Burkina", "Congo,", "Democratic", "Central", "Republic", "West"} {
		if !s.IsLeadingToken(tok) {
			t.Errorf("expected leading token %q", tok)
		}
	}
	if s.IsLeadingToken("Cholera") {
		t.Error("Cholera should not be a leading token")
	}
}
