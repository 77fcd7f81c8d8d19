// Package classify assigns closed-taxonomy material kinds and fills
// missing category/element/unit fields from description keywords.
package classify

import (
	"strings"

	"github.com/cognicore/matsched/pkg/matsched/material"
)

// Rule is one entry of the ordered classification table. Match receives the
// lower-cased category and description.
type Rule struct {
	Name  string
	Kind  material.Kind
	Match func(cat, desc string) bool
}

func has(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// family matches when either the category or the description names the family.
func family(word string) func(cat, desc string) bool {
	return func(cat, desc string) bool {
		return strings.Contains(cat, word) || strings.Contains(desc, word)
	}
}

func familyWith(word string, descWords ...string) func(cat, desc string) bool {
	inFamily := family(word)
	return func(cat, desc string) bool {
		return inFamily(cat, desc) && has(desc, descWords...)
	}
}

func descHas(words ...string) func(cat, desc string) bool {
	return func(_, desc string) bool {
		return has(desc, words...)
	}
}

// defaultRules is evaluated top to bottom; the first match wins. Structural
// families come first, then envelope and finishes, MEP, openings, sitework,
// temporary works and finishing trades.
var defaultRules = []Rule{
	{"concrete-structural", material.KindStructuralConcrete, familyWith("concrete", "beam", "column", "slab")},
	{"concrete-cement", material.KindBinding, familyWith("concrete", "cement")},
	{"concrete-aggregate", material.KindAggregate, familyWith("concrete", "sand", "aggregate")},
	{"concrete-water", material.KindAuxiliary, familyWith("concrete", "water")},

	{"steel-structural", material.KindStructuralSteel, familyWith("steel", "beam", "column", "truss")},
	{"steel-rebar", material.KindReinforcement, familyWith("steel", "reinforcement", "rebar")},
	{"steel-accessory", material.KindAuxiliary, familyWith("steel", "wire", "spacer")},

	{"timber-structural", material.KindStructuralTimber, familyWith("timber", "beam", "joist", "truss")},
	{"timber", material.KindPrimary, family("timber")},

	{"masonry-structural", material.KindStructuralMasonry, familyWith("masonry", "load bearing", "structural")},
	{"masonry-partition", material.KindPartition, familyWith("masonry", "partition")},
	{"masonry-cement", material.KindBinding, familyWith("masonry", "cement")},
	{"masonry-sand", material.KindAggregate, familyWith("masonry", "sand")},
	{"masonry-accessory", material.KindAuxiliary, familyWith("masonry", "ties", "dpc")},

	{"roofing", material.KindRoofing, descHas("roof", "tile", "sheet")},
	{"insulation", material.KindInsulation, descHas("insulation", "thermal", "acoustic")},
	{"waterproofing", material.KindWaterproofing, descHas("waterproof", "membrane")},
	{"cladding", material.KindCladding, descHas("cladding", "facade")},
	{"partition", material.KindPartition, descHas("partition", "dividing wall")},
	{"ceiling", material.KindCeiling, descHas("ceiling", "suspended")},
	{"flooring", material.KindFlooring, descHas("floor", "carpet")},
	{"wall-finish", material.KindWallFinish, descHas("plaster", "paint", "wallpaper")},

	{"plumbing", material.KindPlumbing, descHas("pipe", "plumbing")},
	{"electrical", material.KindElectrical, descHas("wire", "electrical", "cable")},
	{"hvac", material.KindHVAC, descHas("hvac", "duct")},
	{"lighting", material.KindLighting, descHas("light", "lamp")},

	{"door", material.KindDoor, descHas("door")},
	{"window", material.KindWindow, descHas("window")},
	{"cabinet", material.KindCabinet, descHas("cabinet", "cupboard")},
	{"hardware", material.KindHardware, descHas("handle", "hinge", "lock")},

	{"earthwork", material.KindEarthwork, descHas("soil", "excavation")},
	{"foundation", material.KindFoundation, descHas("foundation", "footing")},
	{"paving", material.KindPaving, descHas("paving", "pavement")},
	{"landscaping", material.KindLandscaping, descHas("landscape", "plant")},

	{"formwork", material.KindFormwork, descHas("formwork", "shuttering")},
	{"scaffolding", material.KindScaffolding, descHas("scaffold")},
	{"temporary", material.KindTemporary, descHas("temporary")},
	{"preparatory", material.KindPreparatory, descHas("preparation", "clean")},

	{"finishing", material.KindFinishing, descHas("finish")},
	{"coating", material.KindCoating, descHas("coat")},
	{"sealant", material.KindSealant, descHas("sealant")},
	{"fire-protection", material.KindFireProtection, descHas("fire")},
	{"safety-equipment", material.KindSafetyEquipment, descHas("guard", "handrail")},
	{"security", material.KindSecurity, descHas("security", "access control")},
	{"drainage", material.KindDrainage, descHas("drain", "sewer")},
	{"utility", material.KindUtility, descHas("utility", "service")},
	{"road-base", material.KindRoadBase, descHas("road")},
}

// Rules returns a copy of the default rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// Classifier folds an ordered rule table over (category, description).
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New creates a classifier over rules. A nil table uses the default rules.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = defaultRules
	}
	return &Classifier{rules: rules}
}

// Classify returns the kind of the first matching rule, or primary.
func (c *Classifier) Classify(category, description string) material.Kind {
	cat := strings.ToLower(category)
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		if r.Match(cat, desc) && r.Kind.Valid() {
			return r.Kind
		}
	}
	return material.KindPrimary
}

var std = New(nil)

// Classify classifies with the default rule table.
func Classify(category, description string) material.Kind {
	return std.Classify(category, description)
}
