package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Recoverable pipeline failures. None of them aborts a schedule run.
	ErrExtraction      = errors.New("extraction error")
	ErrConfiguration   = errors.New("configuration error")
	ErrArithmeticGuard = errors.New("consolidation arithmetic guard")
)

// Stage names used in StageError.
const (
	StageExtract     = "extract"
	StageBreakdown   = "breakdown"
	StageConsolidate = "consolidate"
	StageAI          = "ai"
)

// StageError records a non-fatal failure in one pipeline stage.
type StageError struct {
	Stage  string
	Source string // origin tag or catalog key
	Item   string // item index or description, for diagnostics
	Err    error
}

func (e *StageError) Error() string {
	switch {
	case e.Source != "" && e.Item != "":
		return fmt.Sprintf("%s: %s[%s]: %v", e.Stage, e.Source, e.Item, e.Err)
	case e.Source != "":
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Source, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
}

func (e *StageError) Unwrap() error { return e.Err }

// Extraction wraps err as an ExtractionError for one source item.
func Extraction(source, item string, err error) error {
	return &StageError{Stage: StageExtract, Source: source, Item: item, Err: fmt.Errorf("%w: %v", ErrExtraction, err)}
}

// AIOutput wraps err as an ExtractionError for one entry of a remote
// extractor's answer.
func AIOutput(item string, err error) error {
	return &StageError{Stage: StageAI, Source: "ai", Item: item, Err: fmt.Errorf("%w: %v", ErrExtraction, err)}
}

// Configuration wraps a breakdown lookup or ratio failure.
func Configuration(key, field, msg string) error {
	return &StageError{Stage: StageBreakdown, Source: key, Item: field, Err: fmt.Errorf("%w: %s", ErrConfiguration, msg)}
}

// ArithmeticGuard records a merge that would have divided by a zero quantity.
func ArithmeticGuard(key string) error {
	return &StageError{Stage: StageConsolidate, Source: key, Err: fmt.Errorf("%w: combined quantity is zero, rate retained", ErrArithmeticGuard)}
}
