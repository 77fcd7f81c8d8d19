package breakdown

import "github.com/cognicore/matsched/pkg/matsched/material"

func rel(m string, t material.RelationType, d string) material.Relationship {
	return material.Relationship{Material: m, Type: t, Description: d}
}

// DefaultCatalog returns the built-in breakdown catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Config{
			Key: "concrete", Label: "Concrete Works", Category: "Concrete", DefaultUnit: "m³",
			Requirements: []string{
				"Design mix as specified",
				"Proper curing for minimum 7 days",
				"Maximum aggregate size as per specification",
			},
			PreparationSteps: []string{
				"Check all materials meet specifications",
				"Clean and wet formwork before casting",
				"Ensure reinforcement is properly placed",
				"Check concrete mix proportions",
			},
			Relationships: []material.Relationship{
				rel("Formwork", material.Requires, "Required for casting concrete"),
				rel("Reinforcement", material.Requires, "Required for structural concrete"),
			},
			Family: RatioTable{Materials: []Ratio{
				{Material: "Cement", Unit: "Bags", Ratio: 5.2},
				{Material: "Sand", Unit: "Tonnes", Ratio: 0.7},
				{Material: "Ballast", Unit: "Tonnes", Ratio: 1.5},
				{Material: "Water", Unit: "Litres", Ratio: 170},
			}},
		},
		Config{
			Key: "masonry", Label: "Masonry Works", Category: "Masonry", DefaultUnit: "m²",
			Requirements: []string{
				"Blocks to be machine cut to specified sizes",
				"Mortar mix as specified in project requirements",
				"Proper curing for minimum 3 days",
			},
			PreparationSteps: []string{
				"Verify block sizes and quality",
				"Check mortar mixing proportions",
				"Ensure proper alignment and leveling",
				"Clean blocks before laying",
			},
			Relationships: []material.Relationship{
				rel("DPC", material.Requires, "Required for ground floor walls"),
				rel("Wall ties", material.Requires, "Required for cavity walls"),
			},
			Family: SizedPriceMap{DefaultSize: "200mm", Sizes: []SizedEntry{
				{Size: "200mm", Match: []string{"200 mm", "9 inch"}, Materials: []Ratio{
					{Material: "200mm Blocks", Unit: "No", Ratio: 12.5, Element: "Blocks"},
					{Material: "Mortar", Unit: "m³", Ratio: 0.02, Element: "Mortar"},
				}},
				{Size: "150mm", Match: []string{"150 mm", "6 inch"}, Materials: []Ratio{
					{Material: "150mm Blocks", Unit: "No", Ratio: 12.5, Element: "Blocks"},
					{Material: "Mortar", Unit: "m³", Ratio: 0.015, Element: "Mortar"},
				}},
				{Size: "100mm", Match: []string{"100 mm", "4 inch", "partition"}, Materials: []Ratio{
					{Material: "100mm Blocks", Unit: "No", Ratio: 12.5, Element: "Blocks"},
					{Material: "Mortar", Unit: "m³", Ratio: 0.01, Element: "Mortar"},
				}},
			}},
		},
		Config{
			Key: "mortar", Label: "Mortar", Category: "Masonry", DefaultUnit: "m³",
			Requirements:     []string{"Mortar mix as specified in project requirements", "Use within 2 hours of mixing"},
			PreparationSteps: []string{"Check mortar mixing proportions", "Prepare mixing area"},
			Family: RatioTable{Materials: []Ratio{
				{Material: "Cement", Unit: "Bags", Ratio: 7},
				{Material: "Sand", Unit: "Tonnes", Ratio: 1.6},
				{Material: "Water", Unit: "Litres", Ratio: 250},
			}},
		},
		Config{
			Key: "formwork", Label: "Formwork", Category: "Formwork", DefaultUnit: "m²",
			Requirements: []string{
				"Marine boards minimum 18mm thick",
				"Timber supports adequately spaced",
				"Release agent applied evenly",
				"Watertight joints",
			},
			PreparationSteps: []string{
				"Clean all surfaces",
				"Apply release agent",
				"Check alignment and bracing",
				"Verify dimensions and levels",
			},
			Relationships: []material.Relationship{
				rel("Release agent", material.Requires, "For easy formwork removal"),
				rel("Props", material.Requires, "For formwork support"),
			},
			Family: RatioTable{Materials: []Ratio{
				{Material: "Marine Boards", Unit: "No", Ratio: 0.33},
				{Material: "Timber", Unit: "Ft", Ratio: 18.5},
				{Material: "Nails", Unit: "Kg", Ratio: 0.5},
			}},
		},
		Config{
			Key: "steel", Label: "Steel/Reinforcement", Category: "Reinforcement", DefaultUnit: "kg",
			Requirements: []string{
				"Steel grade as specified",
				"Free from rust and oil",
				"Stored off ground",
				"Protected from rain",
			},
			PreparationSteps: []string{
				"Check bar sizes and grades",
				"Ensure proper bending radius",
				"Clean bars if necessary",
				"Verify cover requirements",
			},
			Relationships: []material.Relationship{
				rel("Binding Wire", material.Requires, "For tying reinforcement"),
				rel("Spacer Blocks", material.Requires, "For maintaining cover"),
			},
			Family: GradedBarList{DefaultSize: "Y12",
				Bars: []BarGrade{
					{Size: "Y8", KgPerMeter: 0.395},
					{Size: "Y10", KgPerMeter: 0.617},
					{Size: "Y12", KgPerMeter: 0.888},
					{Size: "Y16", KgPerMeter: 1.58},
					{Size: "Y20", KgPerMeter: 2.47},
					{Size: "Y25", KgPerMeter: 3.85},
				},
				Accessories: []Ratio{
					{Material: "Binding Wire", Unit: "Kg", Ratio: 0.02},
					{Material: "Spacer Blocks", Unit: "No", Ratio: 4},
				},
			},
		},
		Config{
			Key: "waterproofing", Label: "Waterproofing", Category: "Waterproofing", DefaultUnit: "m²",
			Requirements: []string{
				"Surface must be clean and dry",
				"Minimum overlaps as specified",
				"Full bond with substrate",
				"Protected from UV exposure",
			},
			PreparationSteps: []string{
				"Clean and repair substrate",
				"Apply primer as specified",
				"Check ambient conditions",
				"Protect finished work",
			},
			Relationships: []material.Relationship{
				rel("Primer", material.Requires, "For surface preparation"),
				rel("Protection board", material.Follows, "To protect membrane"),
			},
			Family: RatioTable{Materials: []Ratio{
				{Material: "Membrane", Unit: "m²", Ratio: 1.1},
				{Material: "Primer", Unit: "Litres", Ratio: 0.3},
			}},
		},
		Config{
			Key: "doors", Label: "Doors", Category: "Openings", DefaultUnit: "No",
			Requirements: []string{
				"Door size as per schedule",
				"Proper hardware installation",
				"Level and plumb installation",
			},
			PreparationSteps: []string{
				"Check opening dimensions",
				"Prepare frame installation",
				"Install hardware properly",
				"Test operation",
			},
			Relationships: []material.Relationship{
				rel("Door Frame", material.Requires, "Required for door installation"),
				rel("Hardware", material.Requires, "Required for door operation"),
			},
			Family: DirectPriceList{Items: []PricedItem{
				{Material: "Door Frame", Unit: "No", Ratio: 1},
				{Material: "Hinges", Unit: "Pairs", Ratio: 3},
				{Material: "Lock Set", Unit: "No", Ratio: 1},
				{Material: "Screws", Unit: "No", Ratio: 24},
			}},
		},
		Config{
			Key: "windows", Label: "Windows", Category: "Openings", DefaultUnit: "No",
			Requirements: []string{
				"Window size as per schedule",
				"Watertight installation",
				"Proper operation",
			},
			PreparationSteps: []string{
				"Check opening dimensions",
				"Prepare frame installation",
				"Install glass properly",
				"Apply weatherproofing",
			},
			Relationships: []material.Relationship{
				rel("Window Frame", material.Requires, "Required for window installation"),
				rel("Glass", material.Requires, "Required for window completion"),
			},
			Family: DirectPriceList{Items: []PricedItem{
				{Material: "Window Frame", Unit: "No", Ratio: 1},
				{Material: "Glass", Unit: "m²", Ratio: 1},
				{Material: "Sealant", Unit: "Tubes", Ratio: 0.2},
				{Material: "Fixing Screws", Unit: "No", Ratio: 12},
			}},
		},
		Config{
			Key: "roofing", Label: "Roofing Works", Category: "Roofing", DefaultUnit: "m²",
			Requirements: []string{
				"Proper overlap of tiles",
				"Correct batten spacing",
				"Adequate ventilation",
				"Waterproof installation",
			},
			PreparationSteps: []string{
				"Check roof structure",
				"Install underlay",
				"Fix battens",
				"Lay tiles with proper overlap",
			},
			Relationships: []material.Relationship{
				rel("Underlay", material.Precedes, "Must be installed before tiles"),
				rel("Battens", material.Requires, "Required for tile support"),
			},
			Family: RatioTable{Materials: []Ratio{
				{Material: "Roof Tiles", Unit: "No", Ratio: 13.5},
				{Material: "Battens", Unit: "m", Ratio: 3.2},
				{Material: "Roofing Nails", Unit: "Kg", Ratio: 0.15},
				{Material: "Underlay", Unit: "m²", Ratio: 1.1},
			}},
		},
		Config{
			Key: "finishes", Label: "Wall Finishes", Category: "Finishes", DefaultUnit: "m²",
			Requirements: []string{
				"Surface preparation",
				"Even application",
				"Proper drying time",
				"Required number of coats",
			},
			PreparationSteps: []string{
				"Clean surface",
				"Apply filler where needed",
				"Sand smooth",
				"Apply primer before paint",
			},
			Relationships: []material.Relationship{
				rel("Primer", material.Precedes, "Must be applied before paint"),
				rel("Filler", material.Optional, "Used for surface preparation if needed"),
			},
			Family: RatioTable{Materials: []Ratio{
				{Material: "Paint", Unit: "Litres", Ratio: 0.4},
				{Material: "Primer", Unit: "Litres", Ratio: 0.2},
				{Material: "Filler", Unit: "Kg", Ratio: 0.1},
				{Material: "Sandpaper", Unit: "No", Ratio: 0.2},
			}},
		},
	)
}
