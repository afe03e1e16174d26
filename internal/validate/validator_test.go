package validate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-refsplit/internal/corpus"
	"github.com/goliatone/go-refsplit/internal/markdown"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

const testReferenceName = "zig-0.15.1.md"

var testReference = strings.Join([]string{
	"# Zig Language Reference",
	"",
	"preamble text",
	"",
	`## [Introduction] <a id="toc-Introduction"></a>`,
	"Zig is a general-purpose programming language.",
	"See [Values](#toc-Values) for details.",
	"",
	`## [Values] <a id="toc-Values"></a>`,
	`Assign with <a href="#toc-Variables">var</a>.`,
	"</div>",
	`## [Variables] <a name="toc-Variables"></a>`,
	"Use `var` to declare variables.",
}, "\n") + "\n"

func buildTestCorpus(tb testing.TB) string {
	tb.Helper()
	dir := tb.TempDir()
	if err := os.WriteFile(filepath.Join(dir, testReferenceName), []byte(testReference), 0o644); err != nil {
		tb.Fatalf("write reference: %v", err)
	}

	splitter, err := corpus.NewSplitter(corpus.Config{CorpusDir: dir, Reference: testReferenceName}, nil)
	if err != nil {
		tb.Fatalf("NewSplitter: %v", err)
	}
	if _, err := splitter.Split(context.Background(), interfaces.SplitOptions{}); err != nil {
		tb.Fatalf("Split: %v", err)
	}
	return dir
}

func newTestValidator(tb testing.TB, dir string) *Validator {
	tb.Helper()
	v, err := NewValidator(Config{CorpusDir: dir, Reference: testReferenceName}, nil, nil)
	if err != nil {
		tb.Fatalf("NewValidator: %v", err)
	}
	return v
}

func TestValidateCleanCorpus(t *testing.T) {
	dir := buildTestCorpus(t)

	report, err := newTestValidator(t, dir).Validate(context.Background(), interfaces.ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if !report.OK() {
		t.Fatalf("expected clean report, got issues: %#v", report.Issues)
	}
	if report.Checked != 4 {
		t.Fatalf("expected 4 checked files (3 sections + index), got %d", report.Checked)
	}
}

func TestValidateDetectsMissingIndexEntry(t *testing.T) {
	dir := buildTestCorpus(t)

	index := filepath.Join(dir, corpus.SectionIndexFileName)
	data, err := os.ReadFile(index)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	mutated := append(data, []byte("- [99. Ghost](99-ghost.md)\n")...)
	if err := os.WriteFile(index, mutated, 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	report, err := newTestValidator(t, dir).Validate(context.Background(), interfaces.ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if !hasIssue(report, interfaces.IssueIndexEntryMissing) {
		t.Fatalf("expected index-entry-missing issue, got %#v", report.Issues)
	}
}

func TestValidateDetectsUnresolvedAnchor(t *testing.T) {
	dir := buildTestCorpus(t)

	file := filepath.Join(dir, "03-variables.md")
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read section file: %v", err)
	}
	mutated := append(data, []byte("\nBroken [link]("+testReferenceName+"#toc-Nowhere)\n")...)
	if err := os.WriteFile(file, mutated, 0o644); err != nil {
		t.Fatalf("write section file: %v", err)
	}

	report, err := newTestValidator(t, dir).Validate(context.Background(), interfaces.ValidateOptions{SkipExcerpts: true})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	issue, ok := findIssue(report, interfaces.IssueAnchorUnresolved)
	if !ok {
		t.Fatalf("expected anchor-unresolved issue, got %#v", report.Issues)
	}
	if issue.File != "03-variables.md" {
		t.Fatalf("unexpected issue file: %s", issue.File)
	}
	if !strings.Contains(issue.Message, "toc-Nowhere") {
		t.Fatalf("unexpected issue message: %s", issue.Message)
	}
}

func TestValidateResolvesAutoHeadingAnchors(t *testing.T) {
	dir := buildTestCorpus(t)

	// goldmark assigns auto IDs to Markdown headings; links at those IDs
	// must resolve even though the reference defines no explicit anchor.
	file := filepath.Join(dir, "01-introduction.md")
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read section file: %v", err)
	}
	mutated := append(data, []byte("\n[Top](zig-0.15.1.md#zig-language-reference)\n")...)
	if err := os.WriteFile(file, mutated, 0o644); err != nil {
		t.Fatalf("write section file: %v", err)
	}

	report, err := newTestValidator(t, dir).Validate(context.Background(), interfaces.ValidateOptions{SkipExcerpts: true})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if hasIssue(report, interfaces.IssueAnchorUnresolved) {
		t.Fatalf("expected auto heading anchor to resolve, got %#v", report.Issues)
	}
}

func TestValidateDetectsExcerptDrift(t *testing.T) {
	dir := buildTestCorpus(t)

	file := filepath.Join(dir, "02-values.md")
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read section file: %v", err)
	}
	mutated := strings.Replace(string(data), "Assign with", "Assign using", 1)
	if err := os.WriteFile(file, []byte(mutated), 0o644); err != nil {
		t.Fatalf("write section file: %v", err)
	}

	report, err := newTestValidator(t, dir).Validate(context.Background(), interfaces.ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	issue, ok := findIssue(report, interfaces.IssueExcerptDrift)
	if !ok {
		t.Fatalf("expected excerpt-drift issue, got %#v", report.Issues)
	}
	if issue.File != "02-values.md" {
		t.Fatalf("unexpected issue file: %s", issue.File)
	}
	if issue.Line == 0 {
		t.Fatal("expected drift line to be reported")
	}
}

func TestValidateSkipExcerptsSuppressesDriftCheck(t *testing.T) {
	dir := buildTestCorpus(t)

	file := filepath.Join(dir, "02-values.md")
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read section file: %v", err)
	}
	mutated := strings.Replace(string(data), "Assign with", "Assign using", 1)
	if err := os.WriteFile(file, []byte(mutated), 0o644); err != nil {
		t.Fatalf("write section file: %v", err)
	}

	report, err := newTestValidator(t, dir).Validate(context.Background(), interfaces.ValidateOptions{SkipExcerpts: true})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if hasIssue(report, interfaces.IssueExcerptDrift) {
		t.Fatalf("expected drift check to be skipped, got %#v", report.Issues)
	}
}

func TestValidateOrphanSectionFile(t *testing.T) {
	dir := buildTestCorpus(t)

	if err := os.WriteFile(filepath.Join(dir, "09-ghost.md"), []byte("<!-- x -->\nnav\n\nbody\n"), 0o644); err != nil {
		t.Fatalf("write orphan: %v", err)
	}

	report, err := newTestValidator(t, dir).Validate(context.Background(), interfaces.ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	issue, ok := findIssue(report, interfaces.IssueExcerptDrift)
	if !ok {
		t.Fatalf("expected drift issue for orphan ordinal, got %#v", report.Issues)
	}
	if issue.File != "09-ghost.md" {
		t.Fatalf("unexpected issue file: %s", issue.File)
	}
}

func TestCollectAnchors(t *testing.T) {
	anchors, err := collectAnchors(markdown.NewGoldmarkParser(interfaces.ParseOptions{}), []byte(testReference))
	if err != nil {
		t.Fatalf("collectAnchors: %v", err)
	}

	for _, want := range []string{"toc-Introduction", "toc-Values", "toc-Variables"} {
		if _, ok := anchors[want]; !ok {
			t.Fatalf("expected anchor %q, got %#v", want, anchors)
		}
	}
	if _, ok := anchors["zig-language-reference"]; !ok {
		t.Fatalf("expected goldmark auto heading id, got %#v", anchors)
	}
}

type recordingParser struct {
	*markdown.GoldmarkParser
	calls int
}

func (p *recordingParser) Parse(source []byte) ([]byte, error) {
	p.calls++
	return p.GoldmarkParser.Parse(source)
}

func TestValidatorUsesInjectedParser(t *testing.T) {
	dir := buildTestCorpus(t)

	parser := &recordingParser{GoldmarkParser: markdown.NewGoldmarkParser(interfaces.ParseOptions{})}
	v, err := NewValidator(Config{CorpusDir: dir, Reference: testReferenceName}, parser, nil)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	report, err := v.Validate(context.Background(), interfaces.ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected consistent corpus, got issues: %#v", report.Issues)
	}
	if parser.calls == 0 {
		t.Fatal("expected anchor collection to render through the injected parser")
	}
}

func hasIssue(report *interfaces.Report, kind interfaces.IssueKind) bool {
	_, ok := findIssue(report, kind)
	return ok
}

func findIssue(report *interfaces.Report, kind interfaces.IssueKind) (interfaces.Issue, bool) {
	for _, issue := range report.Issues {
		if issue.Kind == kind {
			return issue, true
		}
	}
	return interfaces.Issue{}, false
}
