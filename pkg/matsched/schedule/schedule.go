// Package schedule orders consolidated rows and assigns item numbers.
package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/matsched/pkg/matsched/material"
)

// Scheme selects the item number format.
type Scheme int

const (
	// SchemeNumeric numbers rows M001, M002, ...
	SchemeNumeric Scheme = iota
	// SchemeLetter numbers rows A..Z, then Z1, Z2, ...
	SchemeLetter
)

func (s Scheme) String() string {
	switch s {
	case SchemeNumeric:
		return "numeric"
	case SchemeLetter:
		return "letter"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme accepts "numeric" or "letter", case-insensitively.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "numeric":
		return SchemeNumeric, nil
	case "letter":
		return SchemeLetter, nil
	}
	return SchemeNumeric, fmt.Errorf("unknown numbering scheme %q", s)
}

// Sequence hands out item numbers for one emission. The zero value starts
// at the first number of the numeric scheme.
type Sequence struct {
	scheme Scheme
	next   int
}

// NewSequence returns a fresh sequence for scheme.
func NewSequence(scheme Scheme) *Sequence {
	return &Sequence{scheme: scheme}
}

// Next returns the next item number.
func (s *Sequence) Next() string {
	i := s.next
	s.next++
	return Label(s.scheme, i)
}

// Label formats the zero-based index i under scheme.
func Label(scheme Scheme, i int) string {
	if scheme == SchemeLetter {
		if i < 26 {
			return string(rune('A' + i))
		}
		return fmt.Sprintf("Z%d", i-25)
	}
	return fmt.Sprintf("M%03d", i+1)
}

// Emit sorts a copy of rows by category then element and numbers it.
func Emit(rows []material.Row, scheme Scheme) []material.Row {
	out := append([]material.Row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Element < out[j].Element
	})
	seq := NewSequence(scheme)
	for i := range out {
		out[i].ItemNo = seq.Next()
	}
	return out
}
