package breakdown

import (
	"fmt"
	"strings"

	"github.com/cognicore/matsched/pkg/matsched/classify"
	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

// Descriptor is one elementary material produced by an expansion.
type Descriptor struct {
	Material         string
	Unit             string
	Element          string
	Category         string
	Kind             material.Kind
	Ratio            float64 // per input unit
	Quantity         float64
	Price            float64
	Requirements     []string
	PreparationSteps []string
	Relationships    []material.Relationship
}

// Input is the composite item being expanded.
type Input struct {
	Quantity    float64
	Unit        string
	Description string
	Specs       *project.Specifications
}

// Result is the outcome of one expansion.
type Result struct {
	Descriptors []Descriptor
	Warnings    []string
}

// Expander looks up catalog configs and scales their ratios.
type Expander struct {
	catalog *Catalog
}

// NewExpander creates an expander over catalog; nil uses DefaultCatalog.
func NewExpander(catalog *Catalog) *Expander {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Expander{catalog: catalog}
}

// Catalog returns the catalog backing the expander.
func (e *Expander) Catalog() *Catalog { return e.catalog }

// Has reports whether category names a catalog entry.
func (e *Expander) Has(category string) bool {
	_, ok := e.catalog.Lookup(category)
	return ok
}

// Expand breaks the input into elementary materials. An unknown key yields
// an empty result and a configuration error; invalid ratios are skipped and
// reported. Errors are never fatal.
func (e *Expander) Expand(category string, in Input) (Result, []error) {
	key := NormalizeKey(category)
	cfg, ok := e.catalog.Lookup(key)
	if !ok {
		return Result{}, []error{internalerr.Configuration(key, "key", "unknown breakdown key")}
	}
	qty := material.NonNegative(in.Quantity)

	scales, wastage, errs := mixScales(key, in.Specs)
	var res Result

	emit := func(r Ratio, ratio float64, price float64) {
		if !validRatio(ratio) {
			errs = append(errs, internalerr.Configuration(key, "ratio."+r.Material,
				fmt.Sprintf("invalid ratio %v", ratio)))
			return
		}
		if s, ok := scales[strings.ToLower(r.Material)]; ok {
			ratio *= s
		}
		ratio *= wastage
		d := e.descriptor(cfg, r, ratio, qty, price)
		if w := unusualQuantity(d.Material, d.Quantity); w != "" {
			res.Warnings = append(res.Warnings, w)
		}
		res.Descriptors = append(res.Descriptors, d)
	}

	switch f := cfg.Family.(type) {
	case RatioTable:
		for _, r := range f.Materials {
			emit(r, r.Ratio, r.Price)
		}
	case SizedPriceMap:
		entry, found := f.selectSize(in.Description)
		if !found {
			errs = append(errs, internalerr.Configuration(key, "sizes", "no size variants configured"))
			break
		}
		for _, r := range entry.Materials {
			emit(r, r.Ratio, r.Price)
		}
	case GradedBarList:
		bar, found := f.selectBar(in.Description)
		if !found {
			errs = append(errs, internalerr.Configuration(key, "bars", "no bar grades configured"))
			break
		}
		if !validRatio(bar.KgPerMeter) {
			errs = append(errs, internalerr.Configuration(key, "bars."+bar.Size,
				fmt.Sprintf("invalid kg per metre %v", bar.KgPerMeter)))
			break
		}
		// kg of bar per input unit
		perUnit := 1.0
		if isLengthUnit(in.Unit) {
			perUnit = bar.KgPerMeter
		}
		emit(Ratio{Material: "Reinforcement " + bar.Size, Unit: "kg", Element: "Reinforcement"}, perUnit, bar.Price)
		for _, acc := range f.Accessories {
			emit(acc, acc.Ratio*perUnit, acc.Price)
		}
	case DirectPriceList:
		for _, it := range f.Items {
			emit(Ratio{Material: it.Material, Unit: it.Unit}, it.Ratio, it.Price)
		}
	default:
		errs = append(errs, internalerr.Configuration(key, "family", fmt.Sprintf("unsupported family %T", f)))
	}
	return res, errs
}

func (e *Expander) descriptor(cfg Config, r Ratio, ratio, qty, price float64) Descriptor {
	unit := r.Unit
	if unit == "" {
		unit = cfg.DefaultUnit
	}
	element := r.Element
	if element == "" {
		element = capitalize(r.Material)
	}
	category := cfg.Category
	if category == "" {
		category = cfg.Key
	}
	return Descriptor{
		Material:         r.Material,
		Unit:             unit,
		Element:          element,
		Category:         category,
		Kind:             classify.MaterialKindFromName(r.Material),
		Ratio:            ratio,
		Quantity:         qty * ratio,
		Price:            material.NonNegative(price),
		Requirements:     append([]string(nil), cfg.Requirements...),
		PreparationSteps: append([]string(nil), cfg.PreparationSteps...),
		Relationships:    relationshipsFor(cfg.Relationships, r.Material),
	}
}

// relationshipsFor returns the config edges that apply to one material,
// dropping edges that point back at the material itself.
func relationshipsFor(rels []material.Relationship, name string) []material.Relationship {
	var out []material.Relationship
	for _, rel := range rels {
		if strings.EqualFold(rel.Material, name) {
			continue
		}
		out = append(out, rel)
	}
	return out
}

func (f SizedPriceMap) selectSize(description string) (SizedEntry, bool) {
	if len(f.Sizes) == 0 {
		return SizedEntry{}, false
	}
	d := strings.ToLower(description)
	for _, s := range f.Sizes {
		if s.Size != "" && strings.Contains(d, strings.ToLower(s.Size)) {
			return s, true
		}
		for _, m := range s.Match {
			if m != "" && strings.Contains(d, strings.ToLower(m)) {
				return s, true
			}
		}
	}
	for _, s := range f.Sizes {
		if strings.EqualFold(s.Size, f.DefaultSize) {
			return s, true
		}
	}
	return f.Sizes[0], true
}

func (f GradedBarList) selectBar(description string) (BarGrade, bool) {
	if len(f.Bars) == 0 {
		return BarGrade{}, false
	}
	words := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, w := range words {
		for _, b := range f.Bars {
			if w == strings.ToLower(b.Size) {
				return b, true
			}
		}
	}
	for _, b := range f.Bars {
		if strings.EqualFold(b.Size, f.DefaultSize) {
			return b, true
		}
	}
	return f.Bars[0], true
}

func isLengthUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "m", "lm", "metre", "metres", "meter", "meters", "rm":
		return true
	}
	return false
}

type quantityRange struct{ min, max float64 }

var unusualRanges = map[string]quantityRange{
	"cement":  {0.1, 1000},
	"sand":    {0.1, 100},
	"ballast": {0.1, 100},
	"water":   {1, 10000},
}

// unusualQuantity returns a warning when a quantity falls outside the
// plausible range for a bulk material.
func unusualQuantity(name string, qty float64) string {
	r, ok := unusualRanges[strings.ToLower(name)]
	if !ok || (qty >= r.min && qty <= r.max) {
		return ""
	}
	return fmt.Sprintf("unusual quantity for %s: %g", name, qty)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
