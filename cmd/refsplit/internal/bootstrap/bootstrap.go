package bootstrap

import (
	"fmt"
	"strings"

	refsplit "github.com/goliatone/go-refsplit"
	"github.com/goliatone/go-refsplit/internal/di"
	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

// Options captures configuration for corpus CLI bootstraps.
type Options struct {
	CorpusDir      string
	Reference      string
	IndexTitle     string
	PlanPath       string
	MaxPartBytes   int
	LogLevel       string
	LogProvider    string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the toolkit module and the services the CLIs operate on.
type Module struct {
	Module    *refsplit.Module
	Config    refsplit.Config
	Markdown  interfaces.MarkdownService
	Splitter  interfaces.SplitterService
	Chapters  interfaces.ChapterService
	Validator interfaces.ValidatorService
	Logger    interfaces.Logger
}

// BuildModule constructs a toolkit module configured for corpus operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := refsplit.DefaultConfig()
	cfg.Features.Corpus = true
	cfg.Corpus.Dir = strings.TrimSpace(opts.CorpusDir)
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = "."
	}
	if trimmed := strings.TrimSpace(opts.Reference); trimmed != "" {
		cfg.Corpus.Reference = trimmed
	}
	if trimmed := strings.TrimSpace(opts.IndexTitle); trimmed != "" {
		cfg.Corpus.IndexTitle = trimmed
	}
	if trimmed := strings.TrimSpace(opts.PlanPath); trimmed != "" {
		cfg.Chapters.PlanPath = trimmed
	}
	if opts.MaxPartBytes > 0 {
		cfg.Chapters.MaxPartBytes = opts.MaxPartBytes
	}

	cfg.Features.Logger = true
	if trimmed := strings.TrimSpace(opts.LogProvider); trimmed != "" {
		cfg.Logging.Provider = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := refsplit.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise refsplit module: %w", err)
	}

	splitter := module.Splitter()
	if splitter == nil {
		return nil, fmt.Errorf("splitter not configured; ensure Features.Corpus is enabled")
	}

	logger := logging.CorpusLogger(module.Container().LoggerProvider())

	return &Module{
		Module:    module,
		Config:    cfg,
		Markdown:  module.Markdown(),
		Splitter:  splitter,
		Chapters:  module.Chapters(),
		Validator: module.Validator(),
		Logger:    logger,
	}, nil
}
