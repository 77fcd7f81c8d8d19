// Package matsched builds material schedules from project records.
//
// The Engine runs extraction, annotation, consolidation and numbering in a
// fixed order. Every stage collects its errors instead of aborting, so a
// run always yields a best-effort schedule plus the list of what went wrong.
package matsched

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/matsched/pkg/matsched/annotate"
	"github.com/cognicore/matsched/pkg/matsched/breakdown"
	"github.com/cognicore/matsched/pkg/matsched/classify"
	"github.com/cognicore/matsched/pkg/matsched/consolidate"
	"github.com/cognicore/matsched/pkg/matsched/extract"
	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
	"github.com/cognicore/matsched/pkg/matsched/schedule"
)

// Schedule origins.
const (
	OriginLocal = "local"
	OriginAI    = "ai"
)

// DefaultAITimeout bounds a remote extraction call.
const DefaultAITimeout = 30 * time.Second

// SoftWarning is shown to users when some items could not be extracted.
const SoftWarning = "some materials could not be itemized"

// Extractor is a remote material extraction service.
type Extractor interface {
	ExtractMaterials(ctx context.Context, rec project.Record) ([]material.Candidate, error)
}

// Options configures an Engine. Zero values select the built-in catalog,
// defaults and rules, a no-op logger and no AI path.
type Options struct {
	Catalog    *breakdown.Catalog
	Defaults   map[material.Kind]annotate.Properties
	Classifier *classify.Classifier
	Logger     *zap.Logger
	AI         Extractor
	AITimeout  time.Duration
}

// Engine is safe for concurrent use; it holds no per-run state.
type Engine struct {
	extractor *extract.Extractor
	annotator *annotate.Annotator
	logger    *zap.Logger
	ai        Extractor
	aiTimeout time.Duration
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = breakdown.DefaultCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.AITimeout
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	return &Engine{
		extractor: extract.New(breakdown.NewExpander(catalog), opts.Classifier),
		annotator: annotate.New(catalog, opts.Defaults),
		logger:    logger,
		ai:        opts.AI,
		aiTimeout: timeout,
	}
}

// Result is one schedule run.
type Result struct {
	RunID    string         `json:"runId"`
	Origin   string         `json:"origin"`
	Rows     []material.Row `json:"rows"`
	Errors   []error        `json:"-"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Warning returns SoftWarning when any extraction error was collected.
func (r Result) Warning() string {
	for _, err := range r.Errors {
		if errors.Is(err, ErrExtraction) {
			return SoftWarning
		}
	}
	return ""
}

// Err joins the collected errors, or returns nil.
func (r Result) Err() error {
	return errors.Join(r.Errors...)
}

// ErrorStrings renders the collected errors for display.
func (r Result) ErrorStrings() []string {
	out := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		out[i] = err.Error()
	}
	return out
}

// BuildLocal runs the deterministic local pipeline.
func (e *Engine) BuildLocal(rec project.Record, scheme schedule.Scheme) Result {
	runID := ulid.Make().String()
	extracted, errs := e.extractor.All(rec)
	return e.finish(runID, OriginLocal, extracted.Candidates, errs, extracted.Warnings, scheme)
}

// Build tries the AI extractor first when one is configured and falls back
// to BuildLocal on any error, timeout or empty answer. There is no retry
// and AI output is never merged with local output.
func (e *Engine) Build(ctx context.Context, rec project.Record, scheme schedule.Scheme) Result {
	if e.ai == nil {
		return e.BuildLocal(rec, scheme)
	}
	runID := ulid.Make().String()
	log := e.logger.With(zap.String("run", runID))

	aiCtx, cancel := context.WithTimeout(ctx, e.aiTimeout)
	defer cancel()
	cands, err := e.ai.ExtractMaterials(aiCtx, rec)
	if err != nil {
		log.Warn("ai extraction failed, using local pipeline", zap.Error(err))
		return e.BuildLocal(rec, scheme)
	}
	cands, errs := e.extractor.NormalizeAI(cands)
	if len(cands) == 0 {
		log.Warn("ai extraction returned no materials, using local pipeline", zap.Int("dropped", len(errs)))
		return e.BuildLocal(rec, scheme)
	}
	return e.finish(runID, OriginAI, cands, errs, nil, scheme)
}

func (e *Engine) finish(runID, origin string, cands []material.Candidate, errs []error, warnings []string, scheme schedule.Scheme) Result {
	log := e.logger.With(zap.String("run", runID), zap.String("origin", origin))

	annotated := e.annotator.AnnotateAll(cands)
	rows, mergeErrs := consolidate.Consolidate(consolidate.FromCandidates(annotated))
	errs = append(errs, mergeErrs...)
	rows = schedule.Emit(rows, scheme)

	for _, err := range errs {
		log.Warn("material skipped or adjusted", zap.Error(err))
	}
	for _, w := range warnings {
		log.Debug("breakdown warning", zap.String("warning", w))
	}
	log.Info("schedule built",
		zap.Int("candidates", len(cands)),
		zap.Int("rows", len(rows)),
		zap.Int("errors", len(errs)),
	)
	return Result{RunID: runID, Origin: origin, Rows: rows, Errors: errs, Warnings: warnings}
}
