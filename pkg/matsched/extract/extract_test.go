package extract

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

func decode(t *testing.T, js string) project.Record {
	t.Helper()
	rec, err := project.Decode([]byte(js))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBOQExplicitBreakdown(t *testing.T) {
	rec := decode(t, `{"boqSections":[{"title":"Ground Floor","items":[
		{"description":"Plastering","category":"Finishes","quantity":10,"rate":200,
		 "materialBreakdown":[
			{"material":"Cement","unit":"Bags","category":"Finishes","element":"Plaster","ratio":0.5},
			{"material":"Sand","unit":"Tonnes","category":"Finishes","element":"Plaster","ratio":0.1,"materialType":"aggregate"}
		 ]}
	]}]}`)
	res, errs := New(nil, nil).BOQ(rec.BOQSections, nil)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	cement := res.Candidates[0]
	if cement.Quantity != 5 || cement.Rate != 200 || cement.Amount != 1000 {
		t.Errorf("cement = %+v", cement)
	}
	if cement.Location != "Ground Floor" || cement.Source != SourceBOQ {
		t.Errorf("cement location/source = %q/%q", cement.Location, cement.Source)
	}
	if res.Candidates[1].Kind != material.KindAggregate {
		t.Errorf("explicit kind ignored: %q", res.Candidates[1].Kind)
	}
}

func TestBOQExplicitBreakdownDropsInvalidRelationships(t *testing.T) {
	rec := decode(t, `{"boqSections":[{"title":"Ground Floor","items":[
		{"description":"Block wall","category":"Walling","quantity":4,"rate":50,
		 "materialBreakdown":[
			{"material":"Blocks","unit":"No","ratio":12,"relationships":[
				{"material":"Mortar","type":"requires","description":"Lay in mortar"},
				{"material":"mortar","type":"blocks-on"},
				{"material":"  ","type":"precedes"}
			]}
		 ]}
	]}]}`)
	res, errs := New(nil, nil).BOQ(rec.BOQSections, nil)
	if len(res.Candidates) != 1 {
		t.Fatalf("candidates = %+v", res.Candidates)
	}
	rels := res.Candidates[0].Relationships
	if len(rels) != 1 || rels[0].Material != "Mortar" || rels[0].Type != material.Requires {
		t.Errorf("relationships = %+v", rels)
	}
	if len(errs) != 2 {
		t.Fatalf("errors = %v", errs)
	}
	for _, err := range errs {
		if !errors.Is(err, internalerr.ErrExtraction) {
			t.Errorf("error %v is not an extraction error", err)
		}
	}
}

func TestBOQCatalogExpansion(t *testing.T) {
	rec := decode(t, `{"boqSections":[{"title":"Walls","items":[
		{"description":"200mm block walling","category":"Masonry","unit":"m²","quantity":10,"rate":50}
	]}]}`)
	res, errs := New(nil, nil).BOQ(rec.BOQSections, nil)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates = %+v", res.Candidates)
	}
	blocks := res.Candidates[0]
	if blocks.Description != "200mm Blocks" || !near(blocks.Quantity, 125) {
		t.Errorf("blocks = %+v", blocks)
	}
	if !near(blocks.Amount, 125*50) {
		t.Errorf("amount = %v", blocks.Amount)
	}
	if !near(res.Candidates[1].Quantity, 0.2) {
		t.Errorf("mortar = %+v", res.Candidates[1])
	}
}

func TestBOQSingleCandidate(t *testing.T) {
	rec := decode(t, `{"boqSections":[{"title":"Frame","items":[
		{"description":"<p>Reinforced <b>concrete</b> beam</p>","category":"Superstructure","quantity":"1,200","rate":12,"amount":15000},
		{"description":"Section A","isHeader":true},
		{"description":"Timber door","quantity":3,"rate":100}
	]}]}`)
	res, errs := New(nil, nil).BOQ(rec.BOQSections, nil)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("header not skipped: %+v", res.Candidates)
	}
	beam := res.Candidates[0]
	if beam.Description != "Reinforced concrete beam" {
		t.Errorf("description = %q", beam.Description)
	}
	if beam.Kind != material.KindStructuralConcrete {
		t.Errorf("kind = %q", beam.Kind)
	}
	if beam.Quantity != 1200 || beam.Amount != 15000 {
		t.Errorf("authoritative amount lost: %+v", beam)
	}
	if beam.Element != "beam" || beam.Unit != "m³" {
		t.Errorf("heuristics not applied: element=%q unit=%q", beam.Element, beam.Unit)
	}

	door := res.Candidates[1]
	if door.Category != "formwork" || door.Unit != "No" || door.Amount != 300 {
		t.Errorf("door = %+v", door)
	}
}

func TestBOQSkipsMalformedItems(t *testing.T) {
	rec := decode(t, `{"boqSections":[{"title":"S","items":[
		{"description":"Paint","quantity":2},
		"not an item",
		{"description":"   "},
		{"description":"Sealant","quantity":1}
	]}]}`)
	res, errs := New(nil, nil).BOQ(rec.BOQSections, nil)
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 good candidates, got %+v", res.Candidates)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	for _, err := range errs {
		if !errors.Is(err, internalerr.ErrExtraction) {
			t.Errorf("%v is not an extraction error", err)
		}
	}
}

func TestConcrete(t *testing.T) {
	rec := decode(t, `{"concreteMaterials":[
		{"name":"Concrete C25","quantity":12,"unitPrice":9000,"totalPrice":108000},
		{"name":"","quantity":1}
	]}`)
	res, errs := New(nil, nil).Concrete(rec.ConcreteMaterials)
	if len(errs) != 1 || !errors.Is(errs[0], internalerr.ErrExtraction) {
		t.Fatalf("errors = %v", errs)
	}
	c := res.Candidates[0]
	if c.Kind != material.KindStructuralConcrete || c.Location != "General" || c.Unit != "m³" {
		t.Errorf("concrete = %+v", c)
	}
	if len(c.Relationships) != 2 || c.Relationships[0].Material != "formwork" {
		t.Errorf("relationships = %+v", c.Relationships)
	}
}

func TestRebarDefaults(t *testing.T) {
	rec := decode(t, `{"rebarCalculations":[
		{"primaryBarSize":"Y12","totalWeightKg":250,"pricePerMeter":95,"totalPrice":23750,"quantity":null}
	]}`)
	res, errs := New(nil, nil).Rebar(rec.RebarCalculations)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	r := res.Candidates[0]
	if r.Description != "Reinforcement Y12" || r.Unit != "Kg" || r.Category != "superstructure" {
		t.Errorf("defaults = %+v", r)
	}
	if r.Quantity != 250 || r.Rate != 95 || r.Amount != 23750 {
		t.Errorf("fallback numbers = %+v", r)
	}
	if r.Kind != material.KindReinforcement {
		t.Errorf("kind = %q", r.Kind)
	}
}

func TestRooms(t *testing.T) {
	rec := decode(t, `{"rooms":[
		{"roomName":"Kitchen","wallArea":20,"wallRate":100},
		{"wallArea":4},
		{"roomName":"Void","wallArea":0}
	]}`)
	res, errs := New(nil, nil).Rooms(rec.Rooms, nil)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(res.Candidates) != 4 {
		t.Fatalf("expected 2 rooms x 2 materials, got %d", len(res.Candidates))
	}
	k := res.Candidates[0]
	if k.Category != "Masonry" || k.Location != "Kitchen" || k.Kind != material.KindStructuralMasonry {
		t.Errorf("kitchen blocks = %+v", k)
	}
	if !near(k.Quantity, 250) || !near(k.Amount, 25000) {
		t.Errorf("kitchen quantities = %+v", k)
	}
	if res.Candidates[2].Location != "Unknown Room" {
		t.Errorf("default room name = %q", res.Candidates[2].Location)
	}
	found := false
	for _, rel := range k.Relationships {
		if rel.Material == "wall ties" {
			found = true
		}
	}
	if !found {
		t.Errorf("room relationships missing: %+v", k.Relationships)
	}
}

func TestAllContinuesPastBadSources(t *testing.T) {
	rec := decode(t, `{
		"boqSections":[{"title":"S","items":[{"description":"Paint","quantity":2,"rate":10}]}],
		"concreteMaterials":[42],
		"rebarCalculations":[{"description":"Y10 bars","quantity":5,"rate":3}]
	}`)
	res, errs := New(nil, nil).All(rec)
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates = %+v", res.Candidates)
	}
	if res.Candidates[0].Source != SourceBOQ || res.Candidates[1].Source != SourceRebar {
		t.Errorf("sources out of order: %q, %q", res.Candidates[0].Source, res.Candidates[1].Source)
	}
	if len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}
	var se *internalerr.StageError
	if !errors.As(errs[0], &se) || se.Source != SourceConcrete {
		t.Errorf("error = %#v", errs[0])
	}
}

func TestAllReportsMalformedSources(t *testing.T) {
	rec := decode(t, `{
		"boqSections":[{"title":7,"items":[{"description":"Paint","quantity":2,"rate":10}]}],
		"concreteMaterials":[{"name":"Ready mix","quantity":1,"unitPrice":100}],
		"rooms":{"roomName":"Hall"},
		"specifications":{"includeWastage":"yes"}
	}`)
	res, errs := New(nil, nil).All(rec)
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates = %+v", res.Candidates)
	}
	if res.Candidates[0].Location != "" || res.Candidates[1].Source != SourceConcrete {
		t.Errorf("candidates = %+v", res.Candidates)
	}

	wantSources := []string{SourceRooms, SourceSpecifications, SourceBOQ}
	if len(errs) != len(wantSources) {
		t.Fatalf("errors = %v", errs)
	}
	for i, err := range errs {
		var se *internalerr.StageError
		if !errors.As(err, &se) || se.Source != wantSources[i] || !errors.Is(err, internalerr.ErrExtraction) {
			t.Errorf("error %d = %v, want source %q", i, err, wantSources[i])
		}
	}
}

func TestNormalizeAI(t *testing.T) {
	conf := 1.4
	neg := -3.0
	out, errs := New(nil, nil).NormalizeAI([]material.Candidate{
		{Description: " Steel <i>rebar</i> ", Quantity: neg, Rate: 10, Confidence: &conf},
		{Description: ""},
	})
	if len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}
	var se *internalerr.StageError
	if !errors.As(errs[0], &se) || se.Stage != internalerr.StageAI || !errors.Is(errs[0], internalerr.ErrExtraction) {
		t.Errorf("ai error = %#v", errs[0])
	}
	c := out[0]
	if c.Description != "Steel rebar" || c.Source != SourceAI {
		t.Errorf("normalized = %+v", c)
	}
	if c.Quantity != 0 || c.Category != "steel" || c.Unit != "kg" {
		t.Errorf("heuristics/clamp = %+v", c)
	}
	if c.Kind != material.KindReinforcement {
		t.Errorf("kind = %q", c.Kind)
	}
	if conf != 1.4 {
		t.Error("input confidence mutated")
	}
}

func TestExpandItemUnknownKeyFallsBackToSingle(t *testing.T) {
	res, errs := New(nil, nil).ExpandItem(Item{
		Category:    "exotic-cladding",
		Description: "Aluminium composite cladding panels",
		Unit:        "m²",
		Quantity:    40,
		Rate:        75,
		Source:      SourceBOQ,
		Location:    "Facade",
	}, nil)
	if len(errs) != 1 || !errors.Is(errs[0], internalerr.ErrConfiguration) {
		t.Fatalf("expected one configuration error, got %v", errs)
	}
	if len(res.Candidates) != 1 {
		t.Fatalf("expected the item as a single candidate, got %+v", res.Candidates)
	}
	c := res.Candidates[0]
	if c.Kind != material.KindCladding || c.Quantity != 40 || c.Amount != 3000 {
		t.Errorf("fallback candidate = %+v", c)
	}
}
