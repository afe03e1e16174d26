package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-refsplit/cmd/refsplit/internal/bootstrap"
	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

type stubSplitterService struct {
	splitCalls int
	options    interfaces.SplitOptions
}

func (s *stubSplitterService) Split(_ context.Context, opts interfaces.SplitOptions) (*interfaces.SplitResult, error) {
	s.splitCalls++
	s.options = opts
	return &interfaces.SplitResult{}, nil
}

func TestRunSplitUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubSplitterService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Splitter: svc,
			Logger:   logging.NoOp(),
		}, nil
	}

	if err := runSplit([]string{
		"-reference", "zig-0.15.1.md",
		"-dry-run",
	}); err != nil {
		t.Fatalf("runSplit returned error: %v", err)
	}
	if svc.splitCalls != 1 {
		t.Fatalf("expected split to be called once, got %d", svc.splitCalls)
	}
	if svc.options.Reference != "zig-0.15.1.md" {
		t.Fatalf("expected reference zig-0.15.1.md, got %s", svc.options.Reference)
	}
	if !svc.options.DryRun {
		t.Fatal("expected dry run option forwarded")
	}
}

func TestRunSplitForwardsCorpusDirToBootstrap(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	var captured bootstrap.Options
	svc := &stubSplitterService{}
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		captured = opts
		return &bootstrap.Module{
			Splitter: svc,
			Logger:   logging.NoOp(),
		}, nil
	}

	if err := runSplit([]string{
		"-corpus-dir", "docs/zig/0.15.1",
		"-index-title", "Zig Reference (Split)",
	}); err != nil {
		t.Fatalf("runSplit returned error: %v", err)
	}
	if captured.CorpusDir != "docs/zig/0.15.1" {
		t.Fatalf("expected corpus dir forwarded, got %s", captured.CorpusDir)
	}
	if captured.IndexTitle != "Zig Reference (Split)" {
		t.Fatalf("expected index title forwarded, got %s", captured.IndexTitle)
	}
}
