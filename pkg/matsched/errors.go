package matsched

import "github.com/cognicore/matsched/pkg/matsched/internalerr"

// Sentinels callers can match against Result.Errors with errors.Is.
var (
	ErrExtraction      = internalerr.ErrExtraction
	ErrConfiguration   = internalerr.ErrConfiguration
	ErrArithmeticGuard = internalerr.ErrArithmeticGuard
)
