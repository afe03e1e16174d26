package corpuscmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-refsplit/internal/commands"
	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

const (
	splitOperation    = "corpus.split"
	chaptersOperation = "corpus.build_chapters"
	validateOperation = "corpus.validate"
)

var (
	// ErrCorpusFeatureDisabled is returned when the corpus feature flag is disabled at runtime.
	ErrCorpusFeatureDisabled = errors.New("corpus command: feature disabled")
	// ErrConsistencyIssues is returned by the validate handler when the
	// report contains findings; callers can surface the report and exit
	// non-zero.
	ErrConsistencyIssues = errors.New("corpus command: consistency issues found")
)

var (
	_ command.Commander[SplitCommand]         = (*SplitHandler)(nil)
	_ command.Commander[BuildChaptersCommand] = (*BuildChaptersHandler)(nil)
	_ command.Commander[ValidateCommand]      = (*ValidateHandler)(nil)
)

// SplitHandler orchestrates section splits via the shared command handler foundation.
type SplitHandler struct {
	inner *commands.Handler[SplitCommand]
}

// NewSplitHandler creates a handler bound to the supplied splitter service.
func NewSplitHandler(service interfaces.SplitterService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SplitCommand]) *SplitHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SplitCommand) error {
		if !gates.corpusEnabled() {
			return ErrCorpusFeatureDisabled
		}

		result, err := service.Split(ctx, interfaces.SplitOptions{
			Reference: msg.Reference,
			DryRun:    msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"section_count": len(result.Sections),
				"index":         result.Index.Path,
				"dry_run":       msg.DryRun,
			}).Info("corpus.command.split.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SplitCommand]{
		commands.WithLogger[SplitCommand](baseLogger),
		commands.WithOperation[SplitCommand](splitOperation),
		commands.WithMessageFields(func(msg SplitCommand) map[string]any {
			fields := map[string]any{
				"reference": msg.Reference,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SplitCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SplitHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SplitCommand].
func (h *SplitHandler) Execute(ctx context.Context, msg SplitCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildChaptersHandler orchestrates chapter builds via the shared command handler foundation.
type BuildChaptersHandler struct {
	inner *commands.Handler[BuildChaptersCommand]
}

// NewBuildChaptersHandler creates a handler bound to the supplied chapter service.
func NewBuildChaptersHandler(service interfaces.ChapterService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildChaptersCommand]) *BuildChaptersHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildChaptersCommand) error {
		if !gates.corpusEnabled() {
			return ErrCorpusFeatureDisabled
		}

		result, err := service.Build(ctx, interfaces.ChapterOptions{
			Reference:    msg.Reference,
			PlanPath:     msg.PlanPath,
			MaxPartBytes: msg.MaxPartBytes,
			DryRun:       msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"part_count":    len(result.Parts),
				"missing_count": len(result.MissingSections),
				"index":         result.Index.Path,
				"dry_run":       msg.DryRun,
			}).Info("corpus.command.build_chapters.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildChaptersCommand]{
		commands.WithLogger[BuildChaptersCommand](baseLogger),
		commands.WithOperation[BuildChaptersCommand](chaptersOperation),
		commands.WithMessageFields(func(msg BuildChaptersCommand) map[string]any {
			fields := map[string]any{
				"reference": msg.Reference,
			}
			if msg.PlanPath != "" {
				fields["plan_path"] = msg.PlanPath
			}
			if msg.MaxPartBytes > 0 {
				fields["max_part_bytes"] = msg.MaxPartBytes
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildChaptersCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildChaptersHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildChaptersCommand].
func (h *BuildChaptersHandler) Execute(ctx context.Context, msg BuildChaptersCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ValidateHandler orchestrates consistency checks via the shared command handler foundation.
type ValidateHandler struct {
	inner *commands.Handler[ValidateCommand]
}

// ReportSink receives the validation report before the handler returns,
// letting callers render findings however they need.
type ReportSink func(*interfaces.Report)

// NewValidateHandler creates a handler bound to the supplied validator
// service. When the report contains findings the handler fails with
// ErrConsistencyIssues after delivering the report to the sink.
func NewValidateHandler(service interfaces.ValidatorService, logger interfaces.Logger, gates FeatureGates, sink ReportSink, opts ...commands.HandlerOption[ValidateCommand]) *ValidateHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ValidateCommand) error {
		if !gates.corpusEnabled() {
			return ErrCorpusFeatureDisabled
		}

		report, err := service.Validate(ctx, interfaces.ValidateOptions{
			Reference:    msg.Reference,
			SkipExcerpts: msg.SkipExcerpts,
		})
		if err != nil {
			return err
		}
		if report == nil {
			report = &interfaces.Report{}
		}
		if sink != nil {
			sink(report)
		}

		logging.WithFields(baseLogger, map[string]any{
			"checked_count": report.Checked,
			"issue_count":   len(report.Issues),
		}).Info("corpus.command.validate.completed")

		if !report.OK() {
			return fmt.Errorf("%w: %d", ErrConsistencyIssues, len(report.Issues))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateCommand]{
		commands.WithLogger[ValidateCommand](baseLogger),
		commands.WithOperation[ValidateCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateCommand) map[string]any {
			fields := map[string]any{
				"reference": msg.Reference,
			}
			if msg.SkipExcerpts {
				fields["skip_excerpts"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateCommand].
func (h *ValidateHandler) Execute(ctx context.Context, msg ValidateCommand) error {
	return h.inner.Execute(ctx, msg)
}
