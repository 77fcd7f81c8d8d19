package extract

import (
	"strconv"
	"strings"

	"github.com/cognicore/matsched/internal/textclean"
	"github.com/cognicore/matsched/pkg/matsched/classify"
	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/material"
)

// NormalizeAI cleans candidates returned by a remote extractor so they
// flow through the same annotation and consolidation as local output.
// Entries without a description are dropped with an extraction error.
func (e *Extractor) NormalizeAI(cs []material.Candidate) ([]material.Candidate, []error) {
	var out []material.Candidate
	var errs []error
	for i, c := range cs {
		c.Description = textclean.PlainText(c.Description)
		if c.Description == "" {
			errs = append(errs, internalerr.AIOutput(strconv.Itoa(i), errMissingDescription))
			continue
		}
		c.Category = strings.TrimSpace(c.Category)
		c.Element = strings.TrimSpace(c.Element)
		c.Unit = strings.TrimSpace(c.Unit)
		c.Location = strings.TrimSpace(c.Location)
		if !c.Kind.Valid() {
			c.Kind = e.classifier.Classify(c.Category, c.Description)
		}
		if c.Confidence != nil {
			v := material.NonNegative(*c.Confidence)
			c.Confidence = &v
		}
		c.Source = SourceAI
		c = classify.Fill(c)
		out = append(out, c.Clamped())
	}
	return out, errs
}
