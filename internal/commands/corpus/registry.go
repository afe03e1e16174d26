package corpuscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-refsplit/internal/commands"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// Services groups the corpus services the command handlers depend on.
type Services struct {
	Splitter  interfaces.SplitterService
	Chapters  interfaces.ChapterService
	Validator interfaces.ValidatorService
}

// HandlerSet groups the corpus command handlers produced by RegisterCorpusCommands.
type HandlerSet struct {
	Split    *SplitHandler
	Chapters *BuildChaptersHandler
	Validate *ValidateHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	splitHandlerOpts    []commands.HandlerOption[SplitCommand]
	chaptersHandlerOpts []commands.HandlerOption[BuildChaptersCommand]
	validateHandlerOpts []commands.HandlerOption[ValidateCommand]
	reportSink          ReportSink
}

// WithSplitHandlerOptions forwards options to the SplitHandler constructor.
func WithSplitHandlerOptions(opts ...commands.HandlerOption[SplitCommand]) Option {
	return func(cfg *options) {
		cfg.splitHandlerOpts = append(cfg.splitHandlerOpts, opts...)
	}
}

// WithChaptersHandlerOptions forwards options to the BuildChaptersHandler constructor.
func WithChaptersHandlerOptions(opts ...commands.HandlerOption[BuildChaptersCommand]) Option {
	return func(cfg *options) {
		cfg.chaptersHandlerOpts = append(cfg.chaptersHandlerOpts, opts...)
	}
}

// WithValidateHandlerOptions forwards options to the ValidateHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// WithReportSink installs the callback the validate handler delivers reports to.
func WithReportSink(sink ReportSink) Option {
	return func(cfg *options) {
		cfg.reportSink = sink
	}
}

// RegisterCorpusCommands builds corpus command handlers and registers them with
// the provided registry. A HandlerSet containing the constructed handlers is
// returned so callers can wire additional integrations (dispatcher, cron) as
// needed.
func RegisterCorpusCommands(reg CommandRegistry, services Services, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if services.Splitter == nil {
		return nil, errors.New("corpus command registration: splitter service is nil")
	}
	if services.Chapters == nil {
		return nil, errors.New("corpus command registration: chapter service is nil")
	}
	if services.Validator == nil {
		return nil, errors.New("corpus command registration: validator service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "corpus")

	splitHandler := NewSplitHandler(services.Splitter, logger, gates, cfg.splitHandlerOpts...)
	chaptersHandler := NewBuildChaptersHandler(services.Chapters, logger, gates, cfg.chaptersHandlerOpts...)
	validateHandler := NewValidateHandler(services.Validator, logger, gates, cfg.reportSink, cfg.validateHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(splitHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(chaptersHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(validateHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Split:    splitHandler,
		Chapters: chaptersHandler,
		Validate: validateHandler,
	}, nil
}

// RegisterValidateCron wires the provided validate handler into a cron
// registrar using the supplied command configuration and message payload. The
// handler is executed with a background context.
func RegisterValidateCron(reg CronRegistrar, handler *ValidateHandler, cfg command.HandlerConfig, msg ValidateCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
