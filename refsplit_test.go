package refsplit_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	refsplit "github.com/goliatone/go-refsplit"
	"github.com/goliatone/go-refsplit/internal/commands/fixtures"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

func writeTestReference(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	reference := strings.Join([]string{
		"# Zig Language Reference",
		"",
		`## [Introduction] <a id="toc-Introduction"></a>`,
		"Zig is a general-purpose programming language.",
		`## [Values] <a id="toc-Values"></a>`,
		"See [Introduction](#toc-Introduction).",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "zig-0.15.1.md"), []byte(reference), 0o644); err != nil {
		t.Fatalf("write reference: %v", err)
	}
	return dir
}

func newTestModule(t *testing.T) (*refsplit.Module, string) {
	t.Helper()

	dir := writeTestReference(t)

	cfg := refsplit.DefaultConfig()
	cfg.Corpus.Dir = dir

	module, err := refsplit.New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return module, dir
}

func newCommandTestModule(t *testing.T, commands refsplit.CommandsConfig) *refsplit.Module {
	t.Helper()

	cfg := refsplit.DefaultConfig()
	cfg.Corpus.Dir = writeTestReference(t)
	cfg.Commands = commands

	module, err := refsplit.New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return module
}

func TestModuleSplitThenValidate(t *testing.T) {
	module, dir := newTestModule(t)

	result, err := module.Splitter().Split(context.Background(), interfaces.SplitOptions{})
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(result.Sections))
	}
	if _, err := os.Stat(filepath.Join(dir, "01-introduction.md")); err != nil {
		t.Fatalf("expected split artifact on disk: %v", err)
	}

	report, err := module.Validator().Validate(context.Background(), interfaces.ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected consistent corpus, got issues: %#v", report.Issues)
	}
}

func TestModuleBuildChapters(t *testing.T) {
	module, dir := newTestModule(t)

	plan := strings.Join([]string{
		"chapters:",
		"  - title: Basics",
		"    sections:",
		"      - Introduction",
		"      - Values",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "chapters.yml"), []byte(plan), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	result, err := module.Chapters().Build(context.Background(), interfaces.ChapterOptions{PlanPath: "chapters.yml"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(result.Parts) != 1 {
		t.Fatalf("expected 1 chapter part, got %d", len(result.Parts))
	}
	if len(result.MissingSections) != 0 {
		t.Fatalf("expected no missing sections, got %v", result.MissingSections)
	}
	if _, err := os.Stat(filepath.Join(dir, "chapters", "01-basics.md")); err != nil {
		t.Fatalf("expected chapter artifact on disk: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := refsplit.DefaultConfig()
	cfg.Corpus.Reference = ""

	if _, err := refsplit.New(cfg); !errors.Is(err, refsplit.ErrCorpusReferenceRequired) {
		t.Fatalf("expected ErrCorpusReferenceRequired, got %v", err)
	}
}

func TestRegisterCommandsDisabledByConfig(t *testing.T) {
	module := newCommandTestModule(t, refsplit.CommandsConfig{})

	registry := fixtures.NewRecordingRegistry()
	recorder := fixtures.NewCronRecorder()

	if err := module.RegisterCommands(registry, recorder.Registrar()); err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if len(registry.Handlers) != 0 {
		t.Fatalf("expected no handlers registered, got %d", len(registry.Handlers))
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no cron registrations, got %d", len(recorder.Registrations))
	}
}

func TestRegisterCommandsWiresDispatcher(t *testing.T) {
	module := newCommandTestModule(t, refsplit.CommandsConfig{
		Enabled:                true,
		AutoRegisterDispatcher: true,
	})

	registry := fixtures.NewRecordingRegistry()

	if err := module.RegisterCommands(registry, nil); err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if len(registry.Handlers) != 3 {
		t.Fatalf("expected 3 handlers registered, got %d", len(registry.Handlers))
	}
}

func TestRegisterCommandsSkipsDispatcherWhenDisabled(t *testing.T) {
	module := newCommandTestModule(t, refsplit.CommandsConfig{Enabled: true})

	registry := fixtures.NewRecordingRegistry()

	if err := module.RegisterCommands(registry, nil); err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if len(registry.Handlers) != 0 {
		t.Fatalf("expected dispatcher registration skipped, got %d handlers", len(registry.Handlers))
	}
}

func TestRegisterCommandsSchedulesValidate(t *testing.T) {
	module := newCommandTestModule(t, refsplit.CommandsConfig{
		Enabled:          true,
		AutoRegisterCron: true,
		ValidateCron:     "@daily",
	})

	if _, err := module.Splitter().Split(context.Background(), interfaces.SplitOptions{}); err != nil {
		t.Fatalf("Split returned error: %v", err)
	}

	recorder := fixtures.NewCronRecorder()

	if err := module.RegisterCommands(nil, recorder.Registrar()); err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected 1 cron registration, got %d", len(recorder.Registrations))
	}
	reg := recorder.Registrations[0]
	if reg.Config.Expression != "@daily" {
		t.Fatalf("expected @daily expression, got %q", reg.Config.Expression)
	}
	if reg.Handler == nil {
		t.Fatal("expected a runnable cron handler")
	}
	if err := reg.Handler(); err != nil {
		t.Fatalf("cron handler returned error: %v", err)
	}
}

func TestRegisterCommandsSkipsCronWithoutSchedule(t *testing.T) {
	module := newCommandTestModule(t, refsplit.CommandsConfig{
		Enabled:          true,
		AutoRegisterCron: true,
	})

	recorder := fixtures.NewCronRecorder()

	if err := module.RegisterCommands(nil, recorder.Registrar()); err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no cron registrations, got %d", len(recorder.Registrations))
	}
}

func TestRegisterCommandsNilModule(t *testing.T) {
	var module *refsplit.Module

	if err := module.RegisterCommands(nil, nil); err == nil {
		t.Fatal("expected error for uninitialised module")
	}
}

func TestNilModuleAccessorsReturnNil(t *testing.T) {
	var module *refsplit.Module

	if module.Markdown() != nil {
		t.Fatal("expected nil markdown service")
	}
	if module.Splitter() != nil {
		t.Fatal("expected nil splitter service")
	}
	if module.Chapters() != nil {
		t.Fatal("expected nil chapter service")
	}
	if module.Validator() != nil {
		t.Fatal("expected nil validator service")
	}
}
