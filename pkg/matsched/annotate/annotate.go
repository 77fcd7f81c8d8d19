// Package annotate fills in missing procurement notes on candidates.
//
// Notes come from one place per field: the breakdown catalog entry named by
// the candidate's category when it has any, otherwise the kind defaults.
// Relationships are never touched.
package annotate

import (
	"github.com/cognicore/matsched/pkg/matsched/breakdown"
	"github.com/cognicore/matsched/pkg/matsched/material"
)

// Annotator attaches requirements and preparation steps.
type Annotator struct {
	catalog  *breakdown.Catalog
	defaults map[material.Kind]Properties
}

// New builds an annotator. A nil catalog disables config lookups; nil
// defaults use DefaultProperties.
func New(catalog *breakdown.Catalog, defaults map[material.Kind]Properties) *Annotator {
	if defaults == nil {
		defaults = DefaultProperties()
	}
	return &Annotator{catalog: catalog, defaults: defaults}
}

// WithOverrides returns the built-in defaults with overrides replacing
// whole entries.
func WithOverrides(overrides map[material.Kind]Properties) map[material.Kind]Properties {
	out := DefaultProperties()
	for k, p := range overrides {
		out[k] = p
	}
	return out
}

// Annotate returns c with empty requirement or step lists filled in.
func (a *Annotator) Annotate(c material.Candidate) material.Candidate {
	if len(c.Requirements) > 0 && len(c.PreparationSteps) > 0 {
		return c
	}
	cfg, hasCfg := a.catalog.Lookup(c.Category)
	kindProps := a.defaults[c.Kind.OrPrimary()]

	if len(c.Requirements) == 0 {
		if hasCfg && len(cfg.Requirements) > 0 {
			c.Requirements = clone(cfg.Requirements)
		} else {
			c.Requirements = clone(kindProps.Requirements)
		}
	}
	if len(c.PreparationSteps) == 0 {
		if hasCfg && len(cfg.PreparationSteps) > 0 {
			c.PreparationSteps = clone(cfg.PreparationSteps)
		} else {
			c.PreparationSteps = clone(kindProps.PreparationSteps)
		}
	}
	return c
}

// AnnotateAll annotates every candidate into a new slice.
func (a *Annotator) AnnotateAll(cs []material.Candidate) []material.Candidate {
	out := make([]material.Candidate, len(cs))
	for i, c := range cs {
		out[i] = a.Annotate(c)
	}
	return out
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
