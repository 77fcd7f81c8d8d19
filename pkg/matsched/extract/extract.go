// Package extract turns the source sections of a project record into
// material candidates.
//
// Each adapter handles one source shape. Failures are collected per item;
// a bad item is skipped and the rest of the source is still extracted.
package extract

import (
	"errors"

	"github.com/cognicore/matsched/pkg/matsched/breakdown"
	"github.com/cognicore/matsched/pkg/matsched/classify"
	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

// Source tags carried on candidates and schedule rows.
const (
	SourceBOQ      = "boq"
	SourceConcrete = "concrete"
	SourceRebar    = "rebar"
	SourceRooms    = "room-calculator"
	SourceAI       = "ai"

	SourceSpecifications = "specifications"
)

var (
	errMissingDescription = errors.New("missing description")
	errMissingName        = errors.New("missing name")
)

// Result is the output of one or more adapters.
type Result struct {
	Candidates []material.Candidate
	Warnings   []string
}

func (r *Result) add(o Result) {
	r.Candidates = append(r.Candidates, o.Candidates...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Extractor runs the source adapters. It is stateless apart from its
// collaborators and safe for concurrent use.
type Extractor struct {
	expander   *breakdown.Expander
	classifier *classify.Classifier
}

// New creates an extractor. Nil arguments fall back to the default catalog
// and rule table.
func New(expander *breakdown.Expander, classifier *classify.Classifier) *Extractor {
	if expander == nil {
		expander = breakdown.NewExpander(nil)
	}
	if classifier == nil {
		classifier = classify.New(nil)
	}
	return &Extractor{expander: expander, classifier: classifier}
}

// All runs every adapter over rec in source order: BOQ, concrete, rebar,
// rooms. Top-level fields that failed to decode are reported first, as one
// extraction error each; the remaining sources still run.
func (e *Extractor) All(rec project.Record) (Result, []error) {
	var res Result
	errs := decodeErrors(rec)

	out, errList := e.BOQ(rec.BOQSections, rec.Specifications)
	res.add(out)
	errs = append(errs, errList...)

	out, errList = e.Concrete(rec.ConcreteMaterials)
	res.add(out)
	errs = append(errs, errList...)

	out, errList = e.Rebar(rec.RebarCalculations)
	res.add(out)
	errs = append(errs, errList...)

	out, errList = e.Rooms(rec.Rooms, rec.Specifications)
	res.add(out)
	errs = append(errs, errList...)

	return res, errs
}

// fieldSources maps record JSON keys to source tags.
var fieldSources = map[string]string{
	"boqSections":       SourceBOQ,
	"concreteMaterials": SourceConcrete,
	"rebarCalculations": SourceRebar,
	"rooms":             SourceRooms,
}

func decodeErrors(rec project.Record) []error {
	var errs []error
	for _, fe := range rec.DecodeErrs {
		source, ok := fieldSources[fe.Field]
		if !ok {
			source = fe.Field
		}
		errs = append(errs, internalerr.Extraction(source, "", fe))
	}
	if rec.Specifications != nil && rec.Specifications.DecodeErr != nil {
		errs = append(errs, internalerr.Extraction(SourceSpecifications, "", rec.Specifications.DecodeErr))
	}
	return errs
}
