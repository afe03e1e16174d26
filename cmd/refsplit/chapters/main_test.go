package main

import (
	"context"
	"testing"

	refsplit "github.com/goliatone/go-refsplit"
	"github.com/goliatone/go-refsplit/cmd/refsplit/internal/bootstrap"
	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

type stubChapterService struct {
	buildCalls int
	options    interfaces.ChapterOptions
}

func (s *stubChapterService) Build(_ context.Context, opts interfaces.ChapterOptions) (*interfaces.ChapterResult, error) {
	s.buildCalls++
	s.options = opts
	return &interfaces.ChapterResult{}, nil
}

func TestRunChaptersUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubChapterService{}
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		cfg := refsplit.DefaultConfig()
		cfg.Chapters.PlanPath = opts.PlanPath
		cfg.Chapters.MaxPartBytes = opts.MaxPartBytes
		return &bootstrap.Module{
			Config:   cfg,
			Chapters: svc,
			Logger:   logging.NoOp(),
		}, nil
	}

	if err := runChapters([]string{
		"-reference", "zig-0.15.1.md",
		"-plan", "chapters.yml",
		"-max-part-bytes", "50000",
		"-dry-run",
	}); err != nil {
		t.Fatalf("runChapters returned error: %v", err)
	}
	if svc.buildCalls != 1 {
		t.Fatalf("expected build to be called once, got %d", svc.buildCalls)
	}
	if svc.options.Reference != "zig-0.15.1.md" {
		t.Fatalf("expected reference zig-0.15.1.md, got %s", svc.options.Reference)
	}
	if svc.options.PlanPath != "chapters.yml" {
		t.Fatalf("expected plan path chapters.yml, got %s", svc.options.PlanPath)
	}
	if svc.options.MaxPartBytes != 50000 {
		t.Fatalf("expected max part bytes 50000, got %d", svc.options.MaxPartBytes)
	}
	if !svc.options.DryRun {
		t.Fatal("expected dry run option forwarded")
	}
}
