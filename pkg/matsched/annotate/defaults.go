package annotate

import "github.com/cognicore/matsched/pkg/matsched/material"

// Properties are the procurement notes attached to a material kind.
type Properties struct {
	Requirements     []string `yaml:"requirements" toml:"requirements"`
	PreparationSteps []string `yaml:"preparationSteps" toml:"preparationSteps"`
}

// DefaultProperties returns the built-in kind-level notes. Kinds without an
// entry get nothing.
func DefaultProperties() map[material.Kind]Properties {
	return map[material.Kind]Properties{
		material.KindStructuralConcrete: {
			Requirements:     []string{"Verify concrete mix design", "Check reinforcement details", "Monitor curing conditions", "Check strength requirements"},
			PreparationSteps: []string{"Setup formwork", "Place reinforcement", "Prepare surface", "Check weather conditions"},
		},
		material.KindStructuralSteel: {
			Requirements:     []string{"Check steel grade", "Verify connection details", "Confirm dimensions", "Review welding specifications"},
			PreparationSteps: []string{"Prepare connections", "Check alignment", "Setup welding equipment", "Verify protective coating"},
		},
		material.KindStructuralTimber: {
			Requirements:     []string{"Check moisture content", "Verify grade and treatment", "Review connection details", "Check load specifications"},
			PreparationSteps: []string{"Acclimatize material", "Prepare joints", "Check support conditions", "Verify ventilation requirements"},
		},
		material.KindStructuralMasonry: {
			Requirements:     []string{"Check unit specifications", "Verify mortar mix", "Review bond pattern", "Check structural requirements"},
			PreparationSteps: []string{"Prepare foundation", "Setup guides", "Mix mortar", "Check weather conditions"},
		},
		material.KindPrimary: {
			Requirements:     []string{"Check material specifications", "Store properly", "Handle with care", "Verify quantities"},
			PreparationSteps: []string{"Check material quality", "Prepare storage area", "Review installation method", "Setup handling equipment"},
		},
		material.KindAggregate: {
			Requirements:     []string{"Check gradation", "Verify cleanliness", "Test moisture content", "Check contamination"},
			PreparationSteps: []string{"Prepare storage area", "Setup washing facility", "Arrange stockpiles", "Check drainage"},
		},
		material.KindBinding: {
			Requirements:     []string{"Store in dry conditions", "Use within specified time", "Check mix specifications", "Monitor temperature"},
			PreparationSteps: []string{"Check mixing ratios", "Prepare mixing area", "Ensure water supply", "Setup mixing equipment"},
		},
		material.KindRoofing: {
			Requirements:     []string{"Check weather resistance", "Verify slope requirements", "Check material compatibility", "Review warranty conditions"},
			PreparationSteps: []string{"Prepare substrate", "Check ventilation", "Setup safety equipment", "Verify drainage"},
		},
		material.KindInsulation: {
			Requirements:     []string{"Check R-value", "Verify moisture protection", "Review fire rating", "Check vapor barrier requirements"},
			PreparationSteps: []string{"Clean cavity", "Check ventilation", "Prepare barriers", "Setup protection"},
		},
		material.KindWaterproofing: {
			Requirements:     []string{"Check product compatibility", "Verify coverage rates", "Review cure times", "Check weather conditions"},
			PreparationSteps: []string{"Clean surface", "Repair cracks", "Apply primer", "Setup protection"},
		},
		material.KindWallFinish: {
			Requirements:     []string{"Check surface preparation", "Verify material compatibility", "Review application conditions", "Check coverage rates"},
			PreparationSteps: []string{"Clean surface", "Repair defects", "Apply primer", "Protect adjacent areas"},
		},
		material.KindFlooring: {
			Requirements:     []string{"Check substrate condition", "Verify moisture levels", "Review installation pattern", "Check material acclimation"},
			PreparationSteps: []string{"Level substrate", "Clean surface", "Apply primer", "Setup layout lines"},
		},
		material.KindFormwork: {
			Requirements:     []string{"Check structural stability", "Verify dimensions", "Review release agents", "Check support spacing"},
			PreparationSteps: []string{"Clean panels", "Apply release agent", "Check alignment", "Verify bracing"},
		},
		material.KindScaffolding: {
			Requirements:     []string{"Check load capacity", "Verify stability", "Review safety requirements", "Check access requirements"},
			PreparationSteps: []string{"Level base", "Check components", "Install guardrails", "Verify ties"},
		},
		material.KindFinishing: {
			Requirements:     []string{"Check surface preparation", "Verify environmental conditions", "Review application method", "Check cure times"},
			PreparationSteps: []string{"Clean surface", "Protect surroundings", "Check ventilation", "Setup equipment"},
		},
		material.KindPainting: {
			Requirements:     []string{"Check paint compatibility", "Verify coverage rates", "Review environmental conditions", "Check color consistency"},
			PreparationSteps: []string{"Prepare surface", "Mask areas", "Check ventilation", "Mix paint"},
		},
		material.KindPreparatory: {
			Requirements:     []string{"Check surface conditions", "Verify site readiness", "Review sequence", "Check equipment"},
			PreparationSteps: []string{"Clean work area", "Setup equipment", "Verify access", "Check safety measures"},
		},
		material.KindAuxiliary: {
			Requirements:     []string{"Check compatibility", "Verify quantities", "Review installation method", "Check storage requirements"},
			PreparationSteps: []string{"Prepare work area", "Setup equipment", "Check access", "Verify conditions"},
		},
	}
}
