package breakdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

// WastageFactor scales every ratio of a mix-sensitive family when the
// project includes wastage.
const WastageFactor = 1.1

var mixPattern = regexp.MustCompile(`^\d+(\.\d+)?:\d+(\.\d+)?(:\d+(\.\d+)?)?$`)

type mixKind int

const (
	noMix mixKind = iota
	concreteMix
	mortarMix
)

// mixKinds lists the catalog keys whose ratios follow project mix settings.
var mixKinds = map[string]mixKind{
	"concrete": concreteMix,
	"masonry":  mortarMix,
	"mortar":   mortarMix,
}

// ParseMixRatio parses "1:2:4" style ratios.
func ParseMixRatio(s string) ([]float64, bool) {
	s = strings.TrimSpace(s)
	if !mixPattern.MatchString(s) {
		return nil, false
	}
	parts := strings.Split(s, ":")
	out := make([]float64, len(parts))
	total := 0.0
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
		total += v
	}
	if total <= 0 {
		return nil, false
	}
	return out, true
}

// mixScales returns per-material multipliers for key under specs. Materials
// absent from the map keep their base ratio (times wastage).
func mixScales(key string, specs *project.Specifications) (scales map[string]float64, wastage float64, errs []error) {
	wastage = 1
	kind := mixKinds[key]
	if specs == nil || kind == noMix {
		return nil, wastage, nil
	}
	if specs.IncludeWastage {
		wastage = WastageFactor
	}

	var raw string
	var names []string
	switch kind {
	case concreteMix:
		raw, names = specs.ConcreteMixRatio, []string{"cement", "sand", "ballast"}
	case mortarMix:
		raw, names = specs.MortarRatio, []string{"cement", "sand"}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, wastage, nil
	}
	parts, ok := ParseMixRatio(raw)
	if !ok {
		return nil, wastage, []error{internalerr.Configuration(key, "mixRatio", "invalid mix ratio format "+strconv.Quote(raw))}
	}
	if len(parts) != len(names) {
		return nil, wastage, []error{internalerr.Configuration(key, "mixRatio",
			"mix ratio "+strconv.Quote(raw)+" must have "+strconv.Itoa(len(names))+" parts")}
	}
	total := 0.0
	for _, p := range parts {
		total += p
	}
	scales = make(map[string]float64, len(names))
	for i, n := range names {
		scales[n] = parts[i] / total
	}
	return scales, wastage, nil
}
