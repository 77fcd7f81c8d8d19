package classify

import (
	"strings"

	"github.com/cognicore/matsched/pkg/matsched/material"
)

// AutoCategory guesses a category from description keywords.
func AutoCategory(description string) string {
	d := strings.ToLower(description)
	switch {
	case has(d, "concrete", "cement"):
		return "concrete"
	case has(d, "block", "stone"):
		return "masonry"
	case has(d, "steel", "rebar"):
		return "steel"
	case has(d, "board", "timber"):
		return "formwork"
	}
	return "other"
}

// AutoElement guesses the structural role from description keywords.
func AutoElement(description string) string {
	d := strings.ToLower(description)
	for _, el := range []string{"foundation", "column", "beam", "wall", "slab"} {
		if strings.Contains(d, el) {
			return el
		}
	}
	return "general"
}

// AutoUnit guesses a measurement unit from description keywords.
func AutoUnit(description string) string {
	d := strings.ToLower(description)
	switch {
	case has(d, "concrete"):
		return "m³"
	case has(d, "steel", "rebar"):
		return "kg"
	case has(d, "formwork", "wall"):
		return "m²"
	case has(d, "door", "window"):
		return "No"
	}
	return "unit"
}

// Fill sets category, element and unit from heuristics where they are blank.
func Fill(c material.Candidate) material.Candidate {
	if strings.TrimSpace(c.Category) == "" {
		c.Category = AutoCategory(c.Description)
	}
	if strings.TrimSpace(c.Element) == "" {
		c.Element = AutoElement(c.Description)
	}
	if strings.TrimSpace(c.Unit) == "" {
		c.Unit = AutoUnit(c.Description)
	}
	return c
}

// nameKinds maps elementary breakdown material names to kinds. Order matters:
// "reinforcement" contains "cement" and "spacer blocks" contains "block".
var nameKinds = []struct {
	key  string
	kind material.Kind
}{
	{"reinforcement", material.KindReinforcement},
	{"spacer", material.KindAuxiliary},
	{"cement", material.KindBinding},
	{"mortar", material.KindBinding},
	{"sand", material.KindPrimary},
	{"ballast", material.KindPrimary},
	{"stone", material.KindPrimary},
	{"block", material.KindPrimary},
	{"water", material.KindAuxiliary},
	{"wire", material.KindAuxiliary},
	{"nail", material.KindAuxiliary},
	{"screw", material.KindAuxiliary},
	{"board", material.KindPrimary},
	{"timber", material.KindPrimary},
	{"membrane", material.KindPrimary},
	{"primer", material.KindPrimary},
	{"paint", material.KindFinishing},
	{"glass", material.KindPrimary},
	{"tile", material.KindFinishing},
	{"sealant", material.KindAuxiliary},
	{"hinge", material.KindHardware},
	{"lock", material.KindHardware},
	{"bar", material.KindReinforcement},
}

// MaterialKindFromName classifies an elementary breakdown material by name.
func MaterialKindFromName(name string) material.Kind {
	n := strings.ToLower(name)
	for _, nk := range nameKinds {
		if strings.Contains(n, nk.key) {
			return nk.kind
		}
	}
	return material.KindPrimary
}
