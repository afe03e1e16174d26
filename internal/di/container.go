package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-refsplit/internal/corpus"
	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/internal/logging/console"
	"github.com/goliatone/go-refsplit/internal/logging/gologger"
	"github.com/goliatone/go-refsplit/internal/markdown"
	"github.com/goliatone/go-refsplit/internal/runtimeconfig"
	"github.com/goliatone/go-refsplit/internal/validate"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

// Container wires toolkit dependencies from runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkdownParser

	markdownSvc interfaces.MarkdownService
	splitterSvc interfaces.SplitterService
	chapterSvc  interfaces.ChapterService
	validateSvc interfaces.ValidatorService
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMarkdownParser overrides the default Goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithSplitterService overrides the default splitter binding.
func WithSplitterService(svc interfaces.SplitterService) Option {
	return func(c *Container) {
		c.splitterSvc = svc
	}
}

// WithChapterService overrides the default chapter builder binding.
func WithChapterService(svc interfaces.ChapterService) Option {
	return func(c *Container) {
		c.chapterSvc = svc
	}
}

// WithValidatorService overrides the default validator binding.
func WithValidatorService(svc interfaces.ValidatorService) Option {
	return func(c *Container) {
		c.validateSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if err := c.configureCorpus(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownService exposes the configured markdown service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// SplitterService exposes the configured splitter.
func (c *Container) SplitterService() interfaces.SplitterService {
	return c.splitterSvc
}

// ChapterService exposes the configured chapter builder.
func (c *Container) ChapterService() interfaces.ChapterService {
	return c.chapterSvc
}

// ValidatorService exposes the configured validator.
func (c *Container) ValidatorService() interfaces.ValidatorService {
	return c.validateSvc
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = logging.NoOpProvider()
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "noop":
		c.loggerProvider = logging.NoOpProvider()
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, c.Config.Logging.Provider)
	}
	return nil
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil {
		return nil
	}

	parseOpts := interfaces.ParseOptions{
		Extensions: c.Config.Markdown.Parser.Extensions,
		Sanitize:   c.Config.Markdown.Parser.Sanitize,
		HardWraps:  c.Config.Markdown.Parser.HardWraps,
		SafeMode:   c.Config.Markdown.Parser.SafeMode,
	}
	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(parseOpts)
	}

	svc, err := markdown.NewService(markdown.Config{
		BasePath:        c.Config.Corpus.Dir,
		DefaultVersion:  c.Config.Markdown.DefaultVersion,
		VersionPatterns: c.Config.Markdown.VersionPatterns,
		Pattern:         c.Config.Markdown.Pattern,
		Recursive:       c.Config.Markdown.Recursive,
		Parser:          parseOpts,
	}, c.parser)
	if err != nil {
		return fmt.Errorf("configure markdown service: %w", err)
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureCorpus() error {
	if !c.Config.Features.Corpus {
		return nil
	}

	corpusCfg := corpus.Config{
		CorpusDir:  c.Config.Corpus.Dir,
		Reference:  c.Config.Corpus.Reference,
		IndexTitle: c.Config.Corpus.IndexTitle,
	}

	if c.splitterSvc == nil {
		splitter, err := corpus.NewSplitter(corpusCfg, c.loggerProvider)
		if err != nil {
			return fmt.Errorf("configure splitter: %w", err)
		}
		c.splitterSvc = splitter
	}

	if c.chapterSvc == nil {
		builder, err := corpus.NewBuilder(corpusCfg, c.loggerProvider)
		if err != nil {
			return fmt.Errorf("configure chapter builder: %w", err)
		}
		c.chapterSvc = builder
	}

	if c.validateSvc == nil {
		validator, err := validate.NewValidator(validate.Config{
			CorpusDir: c.Config.Corpus.Dir,
			Reference: c.Config.Corpus.Reference,
		}, c.parser, c.loggerProvider)
		if err != nil {
			return fmt.Errorf("configure validator: %w", err)
		}
		c.validateSvc = validator
	}

	return nil
}
