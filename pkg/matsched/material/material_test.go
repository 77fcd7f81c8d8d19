package material

import (
	"math"
	"testing"
)

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("structural-concrete"); err != nil || k != KindStructuralConcrete {
		t.Fatalf("ParseKind: got %q, %v", k, err)
	}
	if _, err := ParseKind("masonry"); err == nil {
		t.Fatal("expected error for kind outside the taxonomy")
	}
}

func TestKindsAreUniqueAndValid(t *testing.T) {
	seen := make(map[Kind]bool)
	for _, k := range Kinds() {
		if seen[k] {
			t.Errorf("duplicate kind %q", k)
		}
		seen[k] = true
		if !k.Valid() {
			t.Errorf("kind %q not valid", k)
		}
	}
	if len(seen) != 48 {
		t.Errorf("expected 48 kinds, got %d", len(seen))
	}
	if Kind("").OrPrimary() != KindPrimary {
		t.Error("empty kind should fall back to primary")
	}
}

func TestNonNegative(t *testing.T) {
	cases := map[float64]float64{
		-5:           0,
		0:            0,
		12.5:         12.5,
		math.NaN():   0,
		math.Inf(1):  0,
		math.Inf(-1): 0,
	}
	for in, want := range cases {
		if got := NonNegative(in); got != want {
			t.Errorf("NonNegative(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestCandidateToRow(t *testing.T) {
	conf := 0.8
	c := Candidate{
		Category:     "Masonry",
		Description:  "  200mm Block Wall ",
		Unit:         "m²",
		Quantity:     -3,
		Rate:         500,
		Amount:       math.NaN(),
		Source:       "boq",
		Location:     "Room A",
		Confidence:   &conf,
		Requirements: []string{"a", "a", "", "b"},
		Relationships: []Relationship{
			{Material: "mortar", Type: Requires, Description: "first"},
			{Material: "mortar", Type: Requires, Description: "second"},
		},
	}
	row := c.ToRow()
	if row.Description != "200mm Block Wall" {
		t.Errorf("description not trimmed: %q", row.Description)
	}
	if row.Quantity != 0 || row.Amount != 0 || row.Rate != 500 {
		t.Errorf("unexpected numbers: %+v", row)
	}
	if row.Kind != KindPrimary {
		t.Errorf("expected primary fallback, got %q", row.Kind)
	}
	if len(row.Requirements) != 2 {
		t.Errorf("requirements not deduplicated: %v", row.Requirements)
	}
	if len(row.Relationships) != 1 || row.Relationships[0].Description != "first" {
		t.Errorf("relationships: %+v", row.Relationships)
	}
	if row.Confidence != 0.8 {
		t.Errorf("confidence = %v", row.Confidence)
	}
	if row.SourceLabel() != "boq" || len(row.Locations) != 1 {
		t.Errorf("sources/locations: %v %v", row.Sources, row.Locations)
	}
}

func TestRowKeyIgnoresLocation(t *testing.T) {
	a := Candidate{Category: "Masonry", Description: "Block", Unit: "No", Location: "Room A"}.ToRow()
	b := Candidate{Category: "Masonry", Description: "Block ", Unit: "No", Location: "Room B"}.ToRow()
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %v vs %v", a.Key(), b.Key())
	}
}
