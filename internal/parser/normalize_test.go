// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"bytes"
	"strings"
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		wantWarn bool
	}{
		{"two-digit year", "05-Jan-23", "2023-01-05", false},
		{"four-digit year", "05-Jan-2023", "2023-01-05", false},
		{"unpadded day", "5-Jan-23", "2023-01-05", false},
		{"surrounding whitespace", " 28-Feb-20 ", "2020-02-28", false},
		{"not a date", "not a date", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			got := NormalizeDate(tt.in, &log)
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if warned := strings.Contains(log.String(), "warning:"); warned != tt.wantWarn {
				t.Errorf("NormalizeDate(%q) warning logged = %v, want %v", tt.in, warned, tt.wantWarn)
			}
		})
	}
}

func TestNormalizeInt(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     *int
		wantWarn bool
	}{
		{"plain", "1234", intPtr(1234), false},
		{"thousands separator", "1 234", intPtr(1234), false},
		{"multiple separators", "1 234 567", intPtr(1234567), false},
		{"dash is null", "-", nil, false},
		{"empty is null", "", nil, false},
		{"whitespace only is null", "   ", nil, false},
		{"garbage", "abc", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			got := NormalizeInt(tt.in, &log)
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("NormalizeInt(%q) = nil, want %d", tt.in, *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("NormalizeInt(%q) = %d, want nil", tt.in, *got)
			case got != nil && *got != *tt.want:
				t.Errorf("NormalizeInt(%q) = %d, want %d", tt.in, *got, *tt.want)
			}
			if warned := strings.Contains(log.String(), "warning:"); warned != tt.wantWarn {
				t.Errorf("NormalizeInt(%q) warning logged = %v, want %v", tt.in, warned, tt.wantWarn)
			}
		})
	}
}

func TestLookupISO3_Normalizer(t *testing.T) {
	ref := testRefdata(t)

	tests := []struct {
		in   string
		want string
	}{
		{"Democratic Republic of the Congo", "COD"},
		{"  democratic republic of the congo  ", "COD"},
		{"Nigeria", "NGA"},
		{"", ""},
		{"NotACountry", ""},
	}
	for _, tt := range tests {
		if got := LookupISO3(tt.in, ref); got != tt.want {
			t.Errorf("LookupISO3(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Record(t *testing.T) {
	ref := testRefdata(t)
	rec := &RawRecord{Fields: map[State]string{
		StateCountry:        " Nigeria ",
		StateEventName:      "Cholera",
		StateGrade:          "G2",
		StateDateNotified:   "05-Jan-23",
		StateDateStart:      "01-Jan-23",
		StateDateEnd:        "20-Feb-23",
		StateCasesTotal:     "1 234",
		StateCasesConfirmed: "-",
		StateDeaths:         "bad count",
		StateCFR:            "1.0%",
		StateNotes:          "  ongoing outbreak  ",
	}}

	var log bytes.Buffer
	got := Normalize(rec, ref, &log)

	if got.ISO3 != "NGA" || got.Country != "Nigeria" {
		t.Errorf("country/iso3 = %q/%q", got.Country, got.ISO3)
	}
	if got.DateNotified != "2023-01-05" || got.DateStart != "2023-01-01" || got.DateEnd != "2023-02-20" {
		t.Errorf("dates = %q %q %q", got.DateNotified, got.DateStart, got.DateEnd)
	}
	if got.CasesTotal == nil || *got.CasesTotal != 1234 {
		t.Errorf("cases total = %v", got.CasesTotal)
	}
	if got.CasesConfirmed != nil {
		t.Errorf("cases confirmed = %v, want nil", got.CasesConfirmed)
	}
	if got.Deaths != nil {
		t.Errorf("deaths = %v, want nil (unparseable)", got.Deaths)
	}
	if got.CFR != "1.0%" || got.Notes != "ongoing outbreak" {
		t.Errorf("cfr/notes = %q/%q", got.CFR, got.Notes)
	}
	if !strings.Contains(log.String(), "bad count") {
		t.Errorf("expected a warning for the unparseable deaths cell, log: %q", log.String())
	}
}

func TestNormalize_MissingFieldsAreNull(t *testing.T) {
	ref := testRefdata(t)
	rec := &RawRecord{Fields: map[State]string{StateCountry: "Ghana"}}

	var log bytes.Buffer
	got := Normalize(rec, ref, &log)

	if got.ISO3 != "GHA" {
		t.Errorf("iso3 = %q", got.ISO3)
	}
	if got.DateNotified != "" || got.CasesTotal != nil || got.Deaths != nil {
		t.Error("absent fields should normalize to null")
	}
	// Empty date cells null the field but still log; empty count cells are
	// silent nulls.
	if n := strings.Count(log.String(), "could not parse date"); n != 3 {
		t.Errorf("date warnings = %d, want 3, log: %q", n, log.String())
	}
	if strings.Contains(log.String(), "could not parse as integer") {
		t.Errorf("unexpected integer warning for absent counts: %q", log.String())
	}
}

func intPtr(n int) *int { return &n }
