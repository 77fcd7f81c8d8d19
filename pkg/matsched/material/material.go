// Package material holds the candidate and schedule row types shared by
// every pipeline stage.
package material

import (
	"math"
	"strings"
)

// RelationType is the kind of dependency edge between two materials.
type RelationType string

const (
	Requires RelationType = "requires"
	Optional RelationType = "optional"
	Precedes RelationType = "precedes"
	Follows  RelationType = "follows"
)

// Valid reports whether t is one of the four relation types.
func (t RelationType) Valid() bool {
	switch t {
	case Requires, Optional, Precedes, Follows:
		return true
	}
	return false
}

// Relationship is a dependency edge to another material by name.
type Relationship struct {
	Material    string       `json:"material" yaml:"material" toml:"material"`
	Type        RelationType `json:"type" yaml:"type" toml:"type"`
	Description string       `json:"description" yaml:"description" toml:"description"`
}

// Candidate is a material fact before consolidation.
type Candidate struct {
	Category         string
	Element          string
	Description      string
	Unit             string
	Quantity         float64
	Rate             float64
	Amount           float64
	Source           string
	Location         string
	Confidence       *float64 // AI-origin entries only
	Kind             Kind
	Requirements     []string
	PreparationSteps []string
	Relationships    []Relationship
}

// Row is one consolidated line of the material schedule.
type Row struct {
	ItemNo           string         `json:"itemNo"`
	Category         string         `json:"category"`
	Element          string         `json:"element"`
	Description      string         `json:"description"`
	Unit             string         `json:"unit"`
	Kind             Kind           `json:"materialKind"`
	Quantity         float64        `json:"quantity"`
	Rate             float64        `json:"rate"`
	Amount           float64        `json:"amount"`
	Locations        []string       `json:"locations"`
	Sources          []string       `json:"sources"`
	Requirements     []string       `json:"requirements"`
	PreparationSteps []string       `json:"preparationSteps"`
	Relationships    []Relationship `json:"relationships"`
	Confidence       float64        `json:"confidence"`
}

// Key is the consolidation identity of a row. Location is not part of it.
type Key struct {
	Description string
	Unit        string
	Category    string
}

func (k Key) String() string {
	return k.Description + "|" + k.Unit + "|" + k.Category
}

// NormalizeDescription is the description normalization used for identity.
func NormalizeDescription(s string) string {
	return strings.TrimSpace(s)
}

// Key returns the row identity.
func (r Row) Key() Key {
	return Key{Description: NormalizeDescription(r.Description), Unit: r.Unit, Category: r.Category}
}

// SourceLabel joins the source tags into a display label such as "boq+concrete".
// The label is opaque; nothing should parse it.
func (r Row) SourceLabel() string {
	return strings.Join(r.Sources, "+")
}

// NonNegative clamps v to a finite value >= 0.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Clamped returns a copy of c with quantity, rate and amount clamped and
// the kind forced into the taxonomy.
func (c Candidate) Clamped() Candidate {
	c.Quantity = NonNegative(c.Quantity)
	c.Rate = NonNegative(c.Rate)
	c.Amount = NonNegative(c.Amount)
	c.Kind = c.Kind.OrPrimary()
	return c
}

// ToRow converts a single candidate into an unnumbered schedule row.
func (c Candidate) ToRow() Row {
	c = c.Clamped()
	row := Row{
		Category:         c.Category,
		Element:          c.Element,
		Description:      NormalizeDescription(c.Description),
		Unit:             c.Unit,
		Kind:             c.Kind,
		Quantity:         c.Quantity,
		Rate:             c.Rate,
		Amount:           c.Amount,
		Locations:        []string{},
		Sources:          []string{},
		Requirements:     UniqueStrings(c.Requirements),
		PreparationSteps: UniqueStrings(c.PreparationSteps),
		Relationships:    UniqueRelationships(c.Relationships),
	}
	if c.Location != "" {
		row.Locations = append(row.Locations, c.Location)
	}
	if c.Source != "" {
		row.Sources = append(row.Sources, c.Source)
	}
	if c.Confidence != nil {
		row.Confidence = NonNegative(*c.Confidence)
	}
	return row
}

// UniqueStrings returns the ordered union of its arguments with empty and
// duplicate values removed. The result is never nil.
func UniqueStrings(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// UniqueRelationships unions edges by (material, type), keeping the first
// description seen. The result is never nil.
func UniqueRelationships(lists ...[]Relationship) []Relationship {
	type relKey struct {
		material string
		typ      RelationType
	}
	seen := make(map[relKey]struct{})
	out := []Relationship{}
	for _, list := range lists {
		for _, rel := range list {
			k := relKey{rel.Material, rel.Type}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, rel)
		}
	}
	return out
}
