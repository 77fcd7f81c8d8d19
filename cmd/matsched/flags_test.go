package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/matsched/internal/appconfig"
	"github.com/cognicore/matsched/internal/logger"
)

func TestFlagsDefaultFromEnvironment(t *testing.T) {
	env := &appconfig.Config{CatalogPath: "catalog.toml", DBPath: "records.db"}
	fs, opts := newFlagSet(env)
	if err := fs.Parse([]string{"--scheme", "letter", "--defaults", "kinds.yaml"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.catalogPath != "catalog.toml" || opts.dbPath != "records.db" {
		t.Errorf("env defaults not applied: %+v", opts)
	}
	if opts.scheme != "letter" || opts.defaultsPath != "kinds.yaml" {
		t.Errorf("flags not parsed: %+v", opts)
	}
}

func TestConfigFlagsMentionBothFormats(t *testing.T) {
	fs, _ := newFlagSet(&appconfig.Config{})
	for _, name := range []string{"catalog", "defaults"} {
		usage := fs.Lookup(name).Usage
		if !strings.Contains(usage, "YAML") || !strings.Contains(usage, "TOML") {
			t.Errorf("--%s usage = %q", name, usage)
		}
	}
}

// syncRecorder is a log sink that remembers whether it was flushed.
type syncRecorder struct {
	bytes.Buffer
	synced bool
}

func (s *syncRecorder) Sync() error {
	s.synced = true
	return nil
}

func TestExecuteSyncsLogger(t *testing.T) {
	sink := &syncRecorder{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	var out bytes.Buffer
	if code := execute(context.Background(), options{scheme: "roman"}, &appconfig.Config{}, log, &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !sink.synced {
		t.Error("logger not synced before exit")
	}
	if !strings.Contains(sink.String(), "invalid flags") {
		t.Errorf("log output = %q", sink.String())
	}
}
