package extract

import (
	"testing"

	"github.com/ppiankov/ghsextract/internal/model"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		match    model.RawMatch
		expected string
	}{
		{model.RawMatch{Category: model.CategoryH, Codes: []string{"315"}}, "H315"},
		{model.RawMatch{Category: model.CategoryEUH, Codes: []string{"061"}}, "EUH061"},
		{model.RawMatch{Category: model.CategoryP, Codes: []string{"302", "352"}}, "P302 + P352"},
		{model.RawMatch{Category: model.CategoryP, Codes: []string{"305", "351", "338"}}, "P305 + P351 + P338"},
	}

	for _, tt := range tests {
		if got := Canonical(tt.match); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestCanonical_TightSpacingNormalized(t *testing.T) {
	a := Match("P302+P352")[0]
	b := Match("P302   +\n  P352")[0]

	if Canonical(a) != Canonical(b) {
		t.Errorf("expected equal canonical forms, got %q and %q", Canonical(a), Canonical(b))
	}
}

func TestJoinFields(t *testing.T) {
	tests := []struct {
		name     string
		h, p, e  []string
		expected string
	}{
		{"all empty", nil, nil, nil, "\t\t"},
		{"only euh", nil, nil, []string{"EUH061"}, "\t\tEUH061"},
		{"lists", []string{"H319", "H335"}, []string{"P261", "P302 + P352"}, nil, "H319, H335\tP261, P302 + P352\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinFields(tt.h, tt.p, tt.e); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	if got := NormalizeText("Ｐ３０２ ＋ Ｐ３５２"); got != "P302 + P352" {
		t.Errorf("expected %q, got %q", "P302 + P352", got)
	}
	if got := NormalizeText("BEI BERÜHRUNG"); got != "BEI BERÜHRUNG" {
		t.Errorf("expected composed umlauts to survive, got %q", got)
	}
}
