package extract

import (
	"strconv"
	"strings"

	"github.com/cognicore/matsched/internal/textclean"
	"github.com/cognicore/matsched/pkg/matsched/breakdown"
	"github.com/cognicore/matsched/pkg/matsched/classify"
	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

const (
	defaultLocation = "General"
	unknownRoom     = "Unknown Room"
)

var (
	concreteRelationships = []material.Relationship{
		{Material: "formwork", Type: material.Requires, Description: "Requires formwork for casting"},
		{Material: "reinforcement", Type: material.Requires, Description: "Requires steel reinforcement"},
	}
	rebarRelationships = []material.Relationship{
		{Material: "binding wire", Type: material.Requires, Description: "Requires binding wire for assembly"},
		{Material: "spacer blocks", Type: material.Requires, Description: "Requires spacer blocks for cover"},
	}
	roomRelationships = []material.Relationship{
		{Material: "mortar", Type: material.Requires, Description: "Requires mortar for bonding"},
		{Material: "wall ties", Type: material.Requires, Description: "Requires wall ties for stability"},
	}
)

// Concrete extracts concrete calculator lines as structural concrete.
func (e *Extractor) Concrete(items []project.ConcreteMaterial) (Result, []error) {
	var res Result
	var errs []error
	for i, item := range items {
		label := strconv.Itoa(i)
		if item.DecodeErr != nil {
			errs = append(errs, internalerr.Extraction(SourceConcrete, label, item.DecodeErr))
			continue
		}
		name := textclean.PlainText(item.Name)
		if name == "" {
			errs = append(errs, internalerr.Extraction(SourceConcrete, label, errMissingName))
			continue
		}
		qty := item.Quantity.Or(0)
		rate := item.UnitPrice.Or(0)
		amount := item.TotalPrice.Or(rate * qty)
		c := material.Candidate{
			Category:      classify.AutoCategory(name),
			Element:       "concrete",
			Description:   name,
			Unit:          classify.AutoUnit(name),
			Quantity:      qty,
			Rate:          rate,
			Amount:        amount,
			Source:        SourceConcrete,
			Location:      orDefault(item.Location, defaultLocation),
			Kind:          material.KindStructuralConcrete,
			Relationships: cloneRelationships(concreteRelationships),
		}
		res.Candidates = append(res.Candidates, c.Clamped())
	}
	return res, errs
}

// Rebar extracts reinforcement schedule entries. Missing fields fall back
// to the bar size, weight and per-metre price.
func (e *Extractor) Rebar(items []project.RebarCalculation) (Result, []error) {
	var res Result
	var errs []error
	for i, item := range items {
		if item.DecodeErr != nil {
			errs = append(errs, internalerr.Extraction(SourceRebar, strconv.Itoa(i), item.DecodeErr))
			continue
		}
		desc := textclean.PlainText(item.Description)
		if desc == "" {
			desc = strings.TrimSpace("Reinforcement " + strings.TrimSpace(item.PrimaryBarSize))
		}
		c := material.Candidate{
			Category:      orDefault(item.Category, "superstructure"),
			Element:       "reinforcement",
			Description:   desc,
			Unit:          orDefault(item.Unit, "Kg"),
			Quantity:      project.FirstPositive(item.Quantity, item.TotalWeightKg),
			Rate:          project.FirstPositive(item.Rate, item.PricePerMeter),
			Amount:        project.FirstPositive(item.Amount, item.TotalPrice),
			Source:        SourceRebar,
			Location:      orDefault(item.Location, defaultLocation),
			Kind:          material.KindReinforcement,
			Relationships: cloneRelationships(rebarRelationships),
		}
		res.Candidates = append(res.Candidates, c.Clamped())
	}
	return res, errs
}

// Rooms expands each room's wall area through the masonry breakdown. Rooms
// without a positive wall area contribute nothing.
func (e *Extractor) Rooms(rooms []project.Room, specs *project.Specifications) (Result, []error) {
	var res Result
	var errs []error
	for i, room := range rooms {
		if room.DecodeErr != nil {
			errs = append(errs, internalerr.Extraction(SourceRooms, strconv.Itoa(i), room.DecodeErr))
			continue
		}
		if !room.WallArea.Positive() {
			continue
		}
		name := orDefault(textclean.PlainText(room.RoomName), unknownRoom)
		out, expErrs := e.expander.Expand("masonry", breakdown.Input{
			Quantity:    room.WallArea.Value,
			Unit:        "m²",
			Description: name,
			Specs:       specs,
		})
		errs = append(errs, expErrs...)
		res.Warnings = append(res.Warnings, out.Warnings...)
		rate := material.NonNegative(room.WallRate.Or(0))
		for _, d := range out.Descriptors {
			c := material.Candidate{
				Category:         "Masonry",
				Element:          d.Element,
				Description:      d.Material,
				Unit:             d.Unit,
				Quantity:         d.Quantity,
				Rate:             rate,
				Amount:           rate * d.Quantity,
				Source:           SourceRooms,
				Location:         name,
				Kind:             material.KindStructuralMasonry,
				Requirements:     d.Requirements,
				PreparationSteps: d.PreparationSteps,
				Relationships:    material.UniqueRelationships(d.Relationships, roomRelationships),
			}
			res.Candidates = append(res.Candidates, c.Clamped())
		}
	}
	return res, errs
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

func cloneRelationships(rels []material.Relationship) []material.Relationship {
	return append([]material.Relationship(nil), rels...)
}
