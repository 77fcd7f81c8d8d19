package material

import (
	"fmt"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
)

// Kind is the closed material taxonomy tag assigned by the classifier.
type Kind string

const (
	KindStructuralConcrete Kind = "structural-concrete"
	KindStructuralSteel    Kind = "structural-steel"
	KindStructuralTimber   Kind = "structural-timber"
	KindStructuralMasonry  Kind = "structural-masonry"
	KindPrimary            Kind = "primary"
	KindAggregate          Kind = "aggregate"
	KindBinding            Kind = "binding"
	KindAuxiliary          Kind = "auxiliary"
	KindRoofing            Kind = "roofing"
	KindInsulation         Kind = "insulation"
	KindWaterproofing      Kind = "waterproofing"
	KindCladding           Kind = "cladding"
	KindPartition          Kind = "partition"
	KindCeiling            Kind = "ceiling"
	KindFlooring           Kind = "flooring"
	KindWallFinish         Kind = "wall-finish"
	KindPlumbing           Kind = "plumbing"
	KindElectrical         Kind = "electrical"
	KindHVAC               Kind = "hvac"
	KindLighting           Kind = "lighting"
	KindDoor               Kind = "door"
	KindWindow             Kind = "window"
	KindCabinet            Kind = "cabinet"
	KindHardware           Kind = "hardware"
	KindEarthwork          Kind = "earthwork"
	KindFoundation         Kind = "foundation"
	KindPaving             Kind = "paving"
	KindLandscaping        Kind = "landscaping"
	KindFormwork           Kind = "formwork"
	KindScaffolding        Kind = "scaffolding"
	KindTemporary          Kind = "temporary"
	KindPreparatory        Kind = "preparatory"
	KindFinishing          Kind = "finishing"
	KindPainting           Kind = "painting"
	KindCoating            Kind = "coating"
	KindSealant            Kind = "sealant"
	KindFireProtection     Kind = "fire-protection"
	KindSafetyEquipment    Kind = "safety-equipment"
	KindSecurity           Kind = "security"
	KindProtective         Kind = "protective"
	KindAcoustic           Kind = "acoustic"
	KindEnvironmental      Kind = "environmental"
	KindDecorative         Kind = "decorative"
	KindSignage            Kind = "signage"
	KindDrainage           Kind = "drainage"
	KindUtility            Kind = "utility"
	KindRoadBase           Kind = "road-base"
	KindReinforcement      Kind = "reinforcement"
)

var allKinds = []Kind{
	KindStructuralConcrete, KindStructuralSteel, KindStructuralTimber, KindStructuralMasonry,
	KindPrimary, KindAggregate, KindBinding, KindAuxiliary,
	KindRoofing, KindInsulation, KindWaterproofing, KindCladding,
	KindPartition, KindCeiling, KindFlooring, KindWallFinish,
	KindPlumbing, KindElectrical, KindHVAC, KindLighting,
	KindDoor, KindWindow, KindCabinet, KindHardware,
	KindEarthwork, KindFoundation, KindPaving, KindLandscaping,
	KindFormwork, KindScaffolding, KindTemporary, KindPreparatory,
	KindFinishing, KindPainting, KindCoating, KindSealant,
	KindFireProtection, KindSafetyEquipment, KindSecurity, KindProtective,
	KindAcoustic, KindEnvironmental, KindDecorative, KindSignage,
	KindDrainage, KindUtility, KindRoadBase, KindReinforcement,
}

var kindSet = func() map[Kind]struct{} {
	m := make(map[Kind]struct{}, len(allKinds))
	for _, k := range allKinds {
		m[k] = struct{}{}
	}
	return m
}()

// Kinds returns the taxonomy in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Valid reports whether k belongs to the taxonomy.
func (k Kind) Valid() bool {
	_, ok := kindSet[k]
	return ok
}

// OrPrimary returns k, or KindPrimary when k is not a taxonomy member.
func (k Kind) OrPrimary() Kind {
	if k.Valid() {
		return k
	}
	return KindPrimary
}

// ParseKind validates a raw kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown material kind %q", internalerr.ErrInvalidInput, s)
	}
	return k, nil
}
