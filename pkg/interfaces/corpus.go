package interfaces

import "context"

// ArtifactKind distinguishes the files a corpus build produces.
type ArtifactKind string

const (
	// ArtifactSection is a single-topic split file (e.g. 07-variables.md).
	ArtifactSection ArtifactKind = "section"
	// ArtifactChapter is a themed bundle of sections, possibly one part of many.
	ArtifactChapter ArtifactKind = "chapter"
	// ArtifactIndex is a navigation index (README.md, CHAPTERS.md).
	ArtifactIndex ArtifactKind = "index"
)

// ArtifactRecord describes one file written (or planned, under dry-run)
// during a corpus build.
type ArtifactRecord struct {
	Path     string
	Kind     ArtifactKind
	Title    string
	Checksum string
	Size     int64
}

// SplitOptions controls a section split run over the full reference.
type SplitOptions struct {
	// Reference is the full one-page document, relative to the corpus root.
	Reference string
	DryRun    bool
}

// SplitResult reports the artifacts produced by a split run.
type SplitResult struct {
	Sections []ArtifactRecord
	Index    ArtifactRecord
	DryRun   bool
}

// ChapterOptions controls a chapter build over the full reference.
type ChapterOptions struct {
	Reference string
	// PlanPath points at a YAML chapter plan; empty selects the built-in plan.
	PlanPath string
	// MaxPartBytes caps each chapter part; zero selects the default budget.
	MaxPartBytes int
	DryRun       bool
}

// ChapterResult reports the artifacts produced by a chapter build.
type ChapterResult struct {
	Parts []ArtifactRecord
	Index ArtifactRecord
	// MissingSections lists plan entries that were not found in the reference.
	MissingSections []string
	DryRun          bool
}

// SplitterService splits a one-page reference into per-section files plus a
// section index.
type SplitterService interface {
	Split(ctx context.Context, opts SplitOptions) (*SplitResult, error)
}

// ChapterService bundles reference sections into themed chapter files plus a
// chapter index.
type ChapterService interface {
	Build(ctx context.Context, opts ChapterOptions) (*ChapterResult, error)
}

// IssueKind classifies a corpus consistency finding.
type IssueKind string

const (
	// IssueIndexEntryMissing flags an index entry pointing at a nonexistent file.
	IssueIndexEntryMissing IssueKind = "index-entry-missing"
	// IssueAnchorUnresolved flags a link whose anchor does not exist in the
	// full reference.
	IssueAnchorUnresolved IssueKind = "anchor-unresolved"
	// IssueExcerptDrift flags a section file whose body no longer matches the
	// corresponding slice of the full reference.
	IssueExcerptDrift IssueKind = "excerpt-drift"
)

// Issue captures a single corpus consistency finding.
type Issue struct {
	Kind    IssueKind
	File    string
	Line    int
	Message string
}

// Report aggregates the findings of a validation run.
type Report struct {
	Issues  []Issue
	Checked int
}

// OK reports whether the validation run found no issues.
func (r *Report) OK() bool {
	return r == nil || len(r.Issues) == 0
}

// ValidateOptions controls a corpus validation run.
type ValidateOptions struct {
	Reference string
	// SkipExcerpts disables the byte-consistency check, keeping runs cheap
	// when only navigation needs verifying.
	SkipExcerpts bool
}

// ValidatorService runs consistency checks over a split corpus.
type ValidatorService interface {
	Validate(ctx context.Context, opts ValidateOptions) (*Report, error)
}
