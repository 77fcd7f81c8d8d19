package breakdown

// Ratio is one elementary material consumed per unit of the parent item.
type Ratio struct {
	Material string
	Unit     string
	Ratio    float64
	Element  string
	Price    float64 // optional catalog unit price
}

// Family is the per-material-family shape of a breakdown configuration.
// The expander switches on the concrete type; there is no runtime shape
// inspection.
type Family interface {
	familyName() string
}

// RatioTable is a plain ordered list of per-unit ratios.
type RatioTable struct {
	Materials []Ratio
}

// SizedEntry is one size variant of a SizedPriceMap.
type SizedEntry struct {
	Size      string
	Match     []string // extra description keywords selecting this size
	Materials []Ratio
}

// SizedPriceMap selects a size variant from the item description and falls
// back to DefaultSize.
type SizedPriceMap struct {
	DefaultSize string
	Sizes       []SizedEntry
}

// BarGrade is one reinforcement bar size.
type BarGrade struct {
	Size       string
	KgPerMeter float64
	Price      float64 // per kg
}

// GradedBarList expands reinforcement: the selected bar grade converts
// metres to kilograms, and accessories are consumed per kilogram of bar.
type GradedBarList struct {
	DefaultSize string
	Bars        []BarGrade
	Accessories []Ratio
}

// PricedItem is a fixed count of a component per parent unit.
type PricedItem struct {
	Material string
	Unit     string
	Ratio    float64
	Price    float64
}

// DirectPriceList is a list of fixed components with catalog prices,
// used for doors, windows and similar assemblies.
type DirectPriceList struct {
	Items []PricedItem
}

func (RatioTable) familyName() string      { return "ratio-table" }
func (SizedPriceMap) familyName() string   { return "sized-price-map" }
func (GradedBarList) familyName() string   { return "graded-bar-list" }
func (DirectPriceList) familyName() string { return "direct-price-list" }

// FamilyName returns the YAML tag of f.
func FamilyName(f Family) string {
	if f == nil {
		return ""
	}
	return f.familyName()
}
