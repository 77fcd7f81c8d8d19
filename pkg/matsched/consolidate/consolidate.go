// Package consolidate merges schedule rows that describe the same material.
package consolidate

import (
	"github.com/shopspring/decimal"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
)

// FromCandidates converts candidates to single-source rows.
func FromCandidates(cs []material.Candidate) []material.Row {
	rows := make([]material.Row, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, c.ToRow())
	}
	return rows
}

// Consolidate merges rows sharing a material.Key. Output keeps first-seen
// key order. Rows whose keys are already unique pass through unchanged.
func Consolidate(rows []material.Row) ([]material.Row, []error) {
	var errs []error
	index := make(map[material.Key]int, len(rows))
	out := make([]material.Row, 0, len(rows))

	for _, r := range rows {
		r = clampRow(r)
		k := r.Key()
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, r)
			continue
		}
		merged, err := Merge(out[i], r)
		if err != nil {
			errs = append(errs, err)
		}
		out[i] = merged
	}
	return out, errs
}

// Merge combines two rows with the same key. Quantities and amounts add, the
// rate becomes the quantity-weighted mean, and list fields are unioned in
// first-seen order. When the combined quantity is zero the first rate is
// kept and an ArithmeticGuard error is returned alongside the merged row.
func Merge(a, b material.Row) (material.Row, error) {
	var err error
	a, b = clampRow(a), clampRow(b)
	out := a

	// Quantities and money are summed in decimal.
	qa, qb := decimal.NewFromFloat(a.Quantity), decimal.NewFromFloat(b.Quantity)
	total := qa.Add(qb)
	if total.IsPositive() {
		weighted := decimal.NewFromFloat(a.Rate).Mul(qa).Add(decimal.NewFromFloat(b.Rate).Mul(qb))
		out.Rate = material.NonNegative(weighted.Div(total).InexactFloat64())
	} else {
		err = internalerr.ArithmeticGuard(a.Key().String())
	}
	// Sums past the float64 range come back as +Inf and clamp to 0.
	out.Quantity = material.NonNegative(total.InexactFloat64())
	out.Amount = material.NonNegative(decimal.NewFromFloat(a.Amount).Add(decimal.NewFromFloat(b.Amount)).InexactFloat64())
	out.Locations = material.UniqueStrings(a.Locations, b.Locations)
	out.Sources = material.UniqueStrings(a.Sources, b.Sources)
	out.Requirements = material.UniqueStrings(a.Requirements, b.Requirements)
	out.PreparationSteps = material.UniqueStrings(a.PreparationSteps, b.PreparationSteps)
	out.Relationships = material.UniqueRelationships(a.Relationships, b.Relationships)
	if b.Confidence > out.Confidence {
		out.Confidence = b.Confidence
	}
	return out, err
}

func clampRow(r material.Row) material.Row {
	r.Quantity = material.NonNegative(r.Quantity)
	r.Rate = material.NonNegative(r.Rate)
	r.Amount = material.NonNegative(r.Amount)
	r.Confidence = material.NonNegative(r.Confidence)
	r.Kind = r.Kind.OrPrimary()
	return r
}
