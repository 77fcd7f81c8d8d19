package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/matsched/internal/textclean"
	"github.com/cognicore/matsched/pkg/matsched/breakdown"
	"github.com/cognicore/matsched/pkg/matsched/classify"
	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

// BOQ extracts candidates from bill-of-quantities sections. Items carrying
// an explicit breakdown are expanded row by row; items whose category is a
// catalog key go through the expander; everything else becomes a single
// classified candidate.
func (e *Extractor) BOQ(sections []project.BOQSection, specs *project.Specifications) (Result, []error) {
	var res Result
	var errs []error
	for si, section := range sections {
		if section.DecodeErr != nil {
			errs = append(errs, internalerr.Extraction(SourceBOQ, itemLabel(section.Title, si, -1), section.DecodeErr))
		}
		for ii, item := range section.Items {
			label := itemLabel(section.Title, si, ii)
			if item.DecodeErr != nil {
				errs = append(errs, internalerr.Extraction(SourceBOQ, label, item.DecodeErr))
				continue
			}
			if item.IsHeader {
				continue
			}
			desc := textclean.PlainText(item.Description)
			if desc == "" {
				errs = append(errs, internalerr.Extraction(SourceBOQ, label, errMissingDescription))
				continue
			}
			qty := material.NonNegative(item.Quantity.Or(0))
			rate := material.NonNegative(item.Rate.Or(0))

			it := Item{
				Category:    strings.TrimSpace(item.Category),
				Element:     strings.TrimSpace(item.Element),
				Description: desc,
				Unit:        strings.TrimSpace(item.Unit),
				Quantity:    qty,
				Rate:        rate,
				Amount:      item.Amount,
				Source:      SourceBOQ,
				Location:    section.Title,
			}
			switch {
			case len(item.MaterialBreakdown) > 0:
				cs, rowErrs := e.explicitBreakdown(section.Title, label, item, qty, rate)
				res.Candidates = append(res.Candidates, cs...)
				errs = append(errs, rowErrs...)
			case e.expander.Has(item.Category):
				out, expErrs := e.ExpandItem(it, specs)
				res.add(out)
				errs = append(errs, expErrs...)
			default:
				res.Candidates = append(res.Candidates, e.single(it))
			}
		}
	}
	return res, errs
}

// explicitBreakdown expands an item's own per-unit material list. The item
// rate applies unscaled to every row.
func (e *Extractor) explicitBreakdown(location, label string, item project.BOQItem, qty, rate float64) ([]material.Candidate, []error) {
	var out []material.Candidate
	var errs []error
	for ri, row := range item.MaterialBreakdown {
		name := textclean.PlainText(row.Material)
		rowLabel := label + "/" + strconv.Itoa(ri)
		if name == "" {
			errs = append(errs, internalerr.Extraction(SourceBOQ, rowLabel, fmt.Errorf("breakdown row: %w", errMissingName)))
			continue
		}
		ratio := row.Ratio.Or(0)
		if material.NonNegative(ratio) != ratio {
			errs = append(errs, internalerr.Extraction(SourceBOQ, rowLabel, fmt.Errorf("breakdown row %q: invalid ratio %v", name, ratio)))
			continue
		}
		rels, relErrs := validRelationships(row.Relationships, rowLabel, name)
		errs = append(errs, relErrs...)
		kind, err := material.ParseKind(row.Kind)
		if err != nil {
			kind = e.classifier.Classify(row.Category, name)
		}
		q := qty * ratio
		c := classify.Fill(material.Candidate{
			Category:         strings.TrimSpace(row.Category),
			Element:          strings.TrimSpace(row.Element),
			Description:      name,
			Unit:             strings.TrimSpace(row.Unit),
			Quantity:         q,
			Rate:             rate,
			Amount:           rate * q,
			Source:           SourceBOQ,
			Location:         location,
			Kind:             kind,
			Requirements:     row.Requirements,
			PreparationSteps: row.PreparationSteps,
			Relationships:    rels,
		})
		out = append(out, c.Clamped())
	}
	return out, errs
}

// validRelationships drops edges without a target material or with a type
// outside the closed relation set, reporting each one.
func validRelationships(rels []material.Relationship, label, name string) ([]material.Relationship, []error) {
	var out []material.Relationship
	var errs []error
	for _, rel := range rels {
		rel.Material = strings.TrimSpace(rel.Material)
		if rel.Material == "" || !rel.Type.Valid() {
			errs = append(errs, internalerr.Extraction(SourceBOQ, label,
				fmt.Errorf("breakdown row %q: invalid relationship %q (%q)", name, rel.Material, rel.Type)))
			continue
		}
		out = append(out, rel)
	}
	return out, errs
}

// Item is a composite line item as seen by ExpandItem.
type Item struct {
	Category    string
	Element     string
	Description string
	Unit        string
	Quantity    float64
	Rate        float64
	Amount      project.Number // authoritative when valid
	Source      string
	Location    string
}

// ExpandItem breaks it down through the catalog entry named by its
// category. When the key is unknown or the breakdown comes back empty, the
// configuration errors are returned and the item itself is emitted as a
// single classified candidate.
func (e *Extractor) ExpandItem(it Item, specs *project.Specifications) (Result, []error) {
	out, errs := e.expander.Expand(it.Category, breakdown.Input{
		Quantity:    it.Quantity,
		Unit:        it.Unit,
		Description: it.Description,
		Specs:       specs,
	})
	res := Result{Warnings: out.Warnings}
	if len(out.Descriptors) == 0 {
		res.Candidates = append(res.Candidates, e.single(it))
		return res, errs
	}
	for _, d := range out.Descriptors {
		res.Candidates = append(res.Candidates, fromDescriptor(d, it.Rate, it.Source, it.Location))
	}
	return res, errs
}

// single classifies it as one elementary material, filling blank fields
// from description heuristics.
func (e *Extractor) single(it Item) material.Candidate {
	qty := material.NonNegative(it.Quantity)
	amount := it.Amount.Or(it.Rate * qty)
	c := classify.Fill(material.Candidate{
		Category:    it.Category,
		Element:     it.Element,
		Description: it.Description,
		Unit:        it.Unit,
		Quantity:    qty,
		Rate:        it.Rate,
		Amount:      amount,
		Source:      it.Source,
		Location:    it.Location,
		Kind:        e.classifier.Classify(it.Category, it.Description),
	})
	return c.Clamped()
}

// fromDescriptor converts an expanded material. The parent rate is used
// when set, otherwise the catalog price.
func fromDescriptor(d breakdown.Descriptor, rate float64, source, location string) material.Candidate {
	if rate <= 0 {
		rate = d.Price
	}
	c := material.Candidate{
		Category:         d.Category,
		Element:          d.Element,
		Description:      d.Material,
		Unit:             d.Unit,
		Quantity:         d.Quantity,
		Rate:             rate,
		Amount:           rate * d.Quantity,
		Source:           source,
		Location:         location,
		Kind:             d.Kind,
		Requirements:     d.Requirements,
		PreparationSteps: d.PreparationSteps,
		Relationships:    d.Relationships,
	}
	return c.Clamped()
}

// itemLabel names an item for diagnostics; item < 0 names the section.
func itemLabel(title string, section, item int) string {
	if title == "" {
		title = "section " + strconv.Itoa(section)
	}
	if item < 0 {
		return title
	}
	return title + "#" + strconv.Itoa(item)
}
