package refsplit

import (
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	corpuscmd "github.com/goliatone/go-refsplit/internal/commands/corpus"
	"github.com/goliatone/go-refsplit/internal/di"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

// MarkdownService exports the markdown service contract for consumers of the refsplit package.
type MarkdownService = interfaces.MarkdownService

// SplitterService exports the section splitter contract.
type SplitterService = interfaces.SplitterService

// ChapterService exports the chapter builder contract.
type ChapterService = interfaces.ChapterService

// ValidatorService exports the corpus validator contract.
type ValidatorService = interfaces.ValidatorService

// Module represents the top level toolkit runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a toolkit module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markdown returns the configured markdown service.
func (m *Module) Markdown() MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Splitter returns the configured section splitter.
func (m *Module) Splitter() SplitterService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.SplitterService()
}

// Chapters returns the configured chapter builder.
func (m *Module) Chapters() ChapterService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ChapterService()
}

// Validator returns the configured corpus validator.
func (m *Module) Validator() ValidatorService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ValidatorService()
}

// CommandRegistry is the registration contract host command buses implement.
type CommandRegistry = corpuscmd.CommandRegistry

// CronRegistrar registers a scheduled handler with a host scheduler.
type CronRegistrar = corpuscmd.CronRegistrar

// RegisterCommands wires the corpus command handlers according to the module's
// Commands configuration. Registration is a no-op when Commands.Enabled is
// false. The dispatcher registry is only consulted when AutoRegisterDispatcher
// is set, and the validate schedule is only installed when AutoRegisterCron is
// set alongside a non-empty ValidateCron expression.
func (m *Module) RegisterCommands(reg CommandRegistry, cron CronRegistrar) error {
	if m == nil || m.container == nil {
		return errors.New("refsplit: module is not initialised")
	}
	cfg := m.container.Config
	if !cfg.Commands.Enabled {
		return nil
	}
	if !cfg.Commands.AutoRegisterDispatcher {
		reg = nil
	}

	gates := corpuscmd.FeatureGates{
		CorpusEnabled: func() bool { return cfg.Features.Corpus },
	}
	set, err := corpuscmd.RegisterCorpusCommands(reg, corpuscmd.Services{
		Splitter:  m.Splitter(),
		Chapters:  m.Chapters(),
		Validator: m.Validator(),
	}, m.container.LoggerProvider(), gates)
	if err != nil {
		return fmt.Errorf("register corpus commands: %w", err)
	}

	if cfg.Commands.AutoRegisterCron && strings.TrimSpace(cfg.Commands.ValidateCron) != "" {
		return corpuscmd.RegisterValidateCron(cron, set.Validate, command.HandlerConfig{
			Expression: cfg.Commands.ValidateCron,
		}, corpuscmd.ValidateCommand{Reference: cfg.Corpus.Reference})
	}

	return nil
}
