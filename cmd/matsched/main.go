package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/matsched/internal/appconfig"
	"github.com/cognicore/matsched/internal/llm"
	"github.com/cognicore/matsched/internal/logger"
	"github.com/cognicore/matsched/internal/recordfile"
	"github.com/cognicore/matsched/pkg/matsched"
	"github.com/cognicore/matsched/pkg/matsched/config"
	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
	"github.com/cognicore/matsched/pkg/matsched/schedule"
	"github.com/cognicore/matsched/pkg/matsched/store"
	"github.com/cognicore/matsched/pkg/matsched/store/sqlite"
)

type options struct {
	recordPath   string
	dbPath       string
	id           string
	scheme       string
	catalogPath  string
	defaultsPath string
	useAI        bool
	strict       bool
	save         bool
	list         bool
	importPath   string
}

type output struct {
	RunID    string         `json:"runId"`
	Origin   string         `json:"origin"`
	Warning  string         `json:"warning,omitempty"`
	Rows     []material.Row `json:"rows"`
	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

func main() {
	env, envLoaded := appconfig.Load()

	fs, opts := newFlagSet(env)
	_ = fs.Parse(os.Args[1:]) // ExitOnError

	log, err := logger.New(env.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if !envLoaded {
		log.Debug("no .env file found, using process environment")
	}

	os.Exit(execute(context.Background(), *opts, env, log, os.Stdout))
}

// newFlagSet registers the CLI flags. Path flags default to the environment.
func newFlagSet(env *appconfig.Config) (*flag.FlagSet, *options) {
	var opts options
	fs := flag.NewFlagSet("matsched", flag.ExitOnError)
	fs.StringVar(&opts.recordPath, "record", "", "Path to a project record JSON file")
	fs.StringVar(&opts.dbPath, "db", env.DBPath, "SQLite project record store")
	fs.StringVar(&opts.id, "id", "", "Record id to load from --db")
	fs.StringVar(&opts.scheme, "scheme", "numeric", "Item numbering: numeric or letter")
	fs.StringVar(&opts.catalogPath, "catalog", env.CatalogPath, "Optional YAML or TOML breakdown catalog")
	fs.StringVar(&opts.defaultsPath, "defaults", env.DefaultsPath, "Optional YAML or TOML kind defaults")
	fs.BoolVar(&opts.useAI, "ai", false, "Try the configured AI extractor first")
	fs.BoolVar(&opts.strict, "strict", false, "Exit non-zero when any error was collected")
	fs.BoolVar(&opts.save, "save", false, "Save --record into --db and print its id")
	fs.BoolVar(&opts.list, "list", false, "List records stored in --db")
	fs.StringVar(&opts.importPath, "import", "", "Import a JSON Lines file of records into --db")
	return fs, &opts
}

// execute runs the invocation and flushes the logger before main exits.
func execute(ctx context.Context, opts options, env *appconfig.Config, log *logger.Logger, stdout io.Writer) int {
	defer log.Sync()
	return run(ctx, opts, env, log, stdout)
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, opts options, env *appconfig.Config, log *logger.Logger, stdout io.Writer) int {
	scheme, err := schedule.ParseScheme(opts.scheme)
	if err != nil {
		log.Error("invalid flags", "error", err)
		return 1
	}

	var records store.RecordSource
	if opts.dbPath != "" {
		records, err = sqlite.OpenSQLite(ctx, opts.dbPath)
		if err != nil {
			log.Error("open record store", "path", opts.dbPath, "error", err)
			return 1
		}
		defer records.Close()
	}

	if opts.list {
		return listRecords(ctx, records, log, stdout)
	}
	if opts.importPath != "" {
		return importRecords(ctx, opts.importPath, records, log, stdout)
	}

	rec, err := loadRecord(ctx, opts, records)
	if err != nil {
		log.Error("load project record", "error", err)
		return 1
	}

	if opts.save {
		if records == nil {
			log.Error("--save requires --db")
			return 1
		}
		id, err := records.Put(ctx, rec)
		if err != nil {
			log.Error("save project record", "error", err)
			return 1
		}
		fmt.Fprintln(stdout, id)
		return 0
	}

	engine, err := buildEngine(opts, env, log)
	if err != nil {
		log.Error("build engine", "error", err)
		return 1
	}

	res := engine.Build(ctx, rec, scheme)
	if w := res.Warning(); w != "" {
		log.Warn(w, "errors", len(res.Errors))
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{
		RunID:    res.RunID,
		Origin:   res.Origin,
		Warning:  res.Warning(),
		Rows:     res.Rows,
		Errors:   res.ErrorStrings(),
		Warnings: res.Warnings,
	}); err != nil {
		log.Error("write output", "error", err)
		return 1
	}

	if opts.strict && len(res.Errors) > 0 {
		return 2
	}
	return 0
}

func loadRecord(ctx context.Context, opts options, records store.RecordSource) (project.Record, error) {
	switch {
	case opts.recordPath != "":
		return project.LoadFile(opts.recordPath)
	case opts.id != "":
		if records == nil {
			return project.Record{}, errors.New("--id requires --db")
		}
		return records.Get(ctx, opts.id)
	}
	return project.Record{}, errors.New("--record or --db with --id required")
}

func listRecords(ctx context.Context, records store.RecordSource, log *logger.Logger, stdout io.Writer) int {
	if records == nil {
		log.Error("--list requires --db")
		return 1
	}
	list, err := records.List(ctx)
	if err != nil {
		log.Error("list records", "error", err)
		return 1
	}
	for _, sum := range list {
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", sum.ID, sum.UpdatedAt.Format(time.RFC3339), sum.Name)
	}
	return 0
}

// importWorkers bounds concurrent record saves during --import.
const importWorkers = 4

func importRecords(ctx context.Context, path string, records store.RecordSource, log *logger.Logger, stdout io.Writer) int {
	if records == nil {
		log.Error("--import requires --db")
		return 1
	}
	recs, skipped, err := recordfile.LoadJSONL(path)
	for _, s := range skipped {
		log.Warn("skipping malformed record", "error", s)
	}
	if err != nil {
		log.Error("import records", "error", err)
		return 1
	}

	ids := make([]string, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importWorkers)
	for i, rec := range recs {
		g.Go(func() error {
			id, err := records.Put(gctx, rec)
			if err != nil {
				return fmt.Errorf("save record %d (%s): %w", i, rec.Name, err)
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("import records", "error", err)
		return 1
	}

	for _, id := range ids {
		fmt.Fprintln(stdout, id)
	}
	log.Info("imported records", "count", len(recs), "skipped", len(skipped))
	return 0
}

func buildEngine(opts options, env *appconfig.Config, log *logger.Logger) (*matsched.Engine, error) {
	loader := config.Loader{
		CatalogPath:  opts.catalogPath,
		DefaultsPath: opts.defaultsPath,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, err
	}

	engineOpts := matsched.Options{
		Catalog:  components.Catalog,
		Defaults: components.Defaults,
		Logger:   log.Base(),
	}
	if opts.useAI {
		if !env.AIEnabled() {
			log.Warn("--ai set but MATSCHED_AI_BASE_URL/MATSCHED_AI_MODEL are empty, using local pipeline")
		} else {
			engineOpts.AI = &llm.Client{
				BaseURL: env.AIBaseURL,
				APIKey:  env.AIAPIKey,
				Model:   env.AIModel,
			}
			engineOpts.AITimeout = env.AITimeout
		}
	}
	return matsched.New(engineOpts), nil
}
