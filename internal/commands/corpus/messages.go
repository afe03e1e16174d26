package corpuscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	splitMessageType    = "refsplit.corpus.split"
	chaptersMessageType = "refsplit.corpus.build_chapters"
	validateMessageType = "refsplit.corpus.validate"
)

// SplitCommand triggers a section split of the full reference into
// per-section files plus the README.md index.
type SplitCommand struct {
	// Reference is the full one-page document, relative to the corpus root.
	Reference string `json:"reference"`
	// DryRun computes and reports the plan without writing files.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SplitCommand) Type() string { return splitMessageType }

// Validate ensures the reference input is present before handlers execute.
func (cmd SplitCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reference, validation.Required, validation.By(requireNonBlank("refsplit.corpus.split.reference_required", "reference is required"))),
	)
}

// BuildChaptersCommand triggers a chapter build bundling reference sections
// into themed part files plus the CHAPTERS.md index.
type BuildChaptersCommand struct {
	// Reference is the full one-page document, relative to the corpus root.
	Reference string `json:"reference"`
	// PlanPath selects a YAML chapter plan; empty uses the built-in plan.
	PlanPath string `json:"plan_path,omitempty"`
	// MaxPartBytes caps each chapter part; zero uses the default budget.
	MaxPartBytes int `json:"max_part_bytes,omitempty"`
	// DryRun computes and reports the plan without writing files.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildChaptersCommand) Type() string { return chaptersMessageType }

// Validate ensures the reference input is present and the budget is sane.
func (cmd BuildChaptersCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reference, validation.Required, validation.By(requireNonBlank("refsplit.corpus.build_chapters.reference_required", "reference is required"))),
		validation.Field(&cmd.MaxPartBytes, validation.Min(0)),
	)
}

// ValidateCommand triggers a consistency check of a split corpus against its
// full reference.
type ValidateCommand struct {
	// Reference is the full one-page document, relative to the corpus root.
	Reference string `json:"reference"`
	// SkipExcerpts disables the byte-consistency check.
	SkipExcerpts bool `json:"skip_excerpts,omitempty"`
}

// Type implements command.Message.
func (ValidateCommand) Type() string { return validateMessageType }

// Validate ensures the reference input is present before handlers execute.
func (cmd ValidateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reference, validation.Required, validation.By(requireNonBlank("refsplit.corpus.validate.reference_required", "reference is required"))),
	)
}

func requireNonBlank(code, message string) func(value any) error {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
