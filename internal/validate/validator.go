// Package validate runs consistency checks over a split reference corpus:
// navigation indexes must point at real files, anchor links must resolve in
// the full reference, and split section files must remain byte-faithful
// excerpts of it.
package validate

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-refsplit/internal/corpus"
	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/internal/markdown"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

// Config locates the corpus pieces the validator inspects.
type Config struct {
	// CorpusDir is the directory holding the corpus (e.g. docs/zig/0.15.1).
	CorpusDir string
	// Reference is the full one-page document, relative to CorpusDir.
	Reference string
}

// Validator implements interfaces.ValidatorService over a corpus directory.
type Validator struct {
	cfg    Config
	fsys   fs.FS
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

var _ interfaces.ValidatorService = (*Validator)(nil)

// NewValidator constructs a validator rooted at the configured corpus
// directory. Anchor collection renders the reference through mdParser; a nil
// parser falls back to the default goldmark configuration.
func NewValidator(cfg Config, mdParser interfaces.MarkdownParser, provider interfaces.LoggerProvider) (*Validator, error) {
	fsys, err := corpusDirFS(cfg.CorpusDir)
	if err != nil {
		return nil, err
	}
	if mdParser == nil {
		mdParser = markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}
	return &Validator{
		cfg:    cfg,
		fsys:   fsys,
		parser: mdParser,
		logger: logging.ValidateLogger(provider),
	}, nil
}

// sectionFileName matches generated split files like "07-variables.md".
var sectionFileName = regexp.MustCompile(`^(\d{2})-.+\.md$`)

// indexEntry matches navigation bullets like "- [07. Variables](07-variables.md)".
var indexEntry = regexp.MustCompile(`^- \[[^\]]+\]\(([^)]+)\)`)

// Validate runs every check and aggregates findings into a report. The
// returned error covers operational failures only; consistency findings live
// in the report.
func (v *Validator) Validate(ctx context.Context, opts interfaces.ValidateOptions) (*interfaces.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reference := v.cfg.Reference
	if trimmed := strings.TrimSpace(opts.Reference); trimmed != "" {
		reference = trimmed
	}

	source, err := fs.ReadFile(v.fsys, reference)
	if err != nil {
		return nil, fmt.Errorf("validate: read reference %s: %w", reference, err)
	}
	refLines := strings.Split(strings.TrimSuffix(string(source), "\n"), "\n")
	sections := corpus.ScanSections(refLines)
	anchors, err := collectAnchors(v.parser, source)
	if err != nil {
		return nil, err
	}

	report := &interfaces.Report{}

	for _, index := range []string{corpus.SectionIndexFileName, corpus.ChapterIndexFileName} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v.checkIndex(index, report)
	}

	files, err := v.corpusFiles()
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v.checkAnchors(file, reference, anchors, report)
	}

	if !opts.SkipExcerpts {
		v.checkExcerpts(files, refLines, sections, reference, report)
	}

	report.Checked = len(files)

	logging.WithCorpusContext(v.logger, reference, "", "validate").Info(
		"validate.completed",
		"file_count", len(files),
		"issue_count", len(report.Issues),
	)
	return report, nil
}

// checkIndex verifies that every navigation bullet in the index points at an
// existing file. A missing index is not an issue; partially built corpora are
// legitimate.
func (v *Validator) checkIndex(index string, report *interfaces.Report) {
	data, err := fs.ReadFile(v.fsys, index)
	if err != nil {
		return
	}

	for i, line := range strings.Split(string(data), "\n") {
		m := indexEntry.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		target := m[1]
		if hash := strings.IndexByte(target, '#'); hash >= 0 {
			target = target[:hash]
		}
		if target == "" {
			continue
		}
		if _, err := fs.Stat(v.fsys, target); err != nil {
			report.Issues = append(report.Issues, interfaces.Issue{
				Kind:    interfaces.IssueIndexEntryMissing,
				File:    index,
				Line:    i + 1,
				Message: fmt.Sprintf("index entry points at missing file %q", target),
			})
		}
	}
}

// checkAnchors verifies that every link into the full reference names an
// anchor the reference actually defines.
func (v *Validator) checkAnchors(file, reference string, anchors map[string]struct{}, report *interfaces.Report) {
	data, err := fs.ReadFile(v.fsys, file)
	if err != nil {
		return
	}

	quoted := regexp.QuoteMeta(reference)
	markdownLink := regexp.MustCompile(`\]\((?:\.\./)?` + quoted + `#([^)]+)\)`)
	htmlLink := regexp.MustCompile(`href="(?:\.\./)?` + quoted + `#([^"]+)"`)

	for i, line := range strings.Split(string(data), "\n") {
		for _, pattern := range []*regexp.Regexp{markdownLink, htmlLink} {
			for _, m := range pattern.FindAllStringSubmatch(line, -1) {
				anchor := m[1]
				if _, ok := anchors[anchor]; ok {
					continue
				}
				report.Issues = append(report.Issues, interfaces.Issue{
					Kind:    interfaces.IssueAnchorUnresolved,
					File:    file,
					Line:    i + 1,
					Message: fmt.Sprintf("anchor %q not defined in %s", anchor, reference),
				})
			}
		}
	}
}

// checkExcerpts verifies each split section file is a byte-consistent excerpt
// of the reference: generated header stripped and link rewriting undone, the
// remainder must equal the scanned section slice.
func (v *Validator) checkExcerpts(files []string, refLines []string, sections []corpus.Section, reference string, report *interfaces.Report) {
	for _, file := range files {
		m := sectionFileName.FindStringSubmatch(file)
		if m == nil {
			continue
		}
		ordinal, err := strconv.Atoi(m[1])
		if err != nil || ordinal < 1 {
			continue
		}
		if ordinal > len(sections) {
			report.Issues = append(report.Issues, interfaces.Issue{
				Kind:    interfaces.IssueExcerptDrift,
				File:    file,
				Message: fmt.Sprintf("section %d does not exist in %s (only %d sections)", ordinal, reference, len(sections)),
			})
			continue
		}

		data, err := fs.ReadFile(v.fsys, file)
		if err != nil {
			continue
		}

		section := sections[ordinal-1]
		expected := strings.Join(corpus.SectionBody(refLines, section), "\n") + "\n"

		lines := strings.Split(string(data), "\n")
		if len(lines) < 4 {
			report.Issues = append(report.Issues, interfaces.Issue{
				Kind:    interfaces.IssueExcerptDrift,
				File:    file,
				Message: "file too short to contain the generated header and a section body",
			})
			continue
		}
		body := strings.Join(lines[3:], "\n")
		body = corpus.RestoreAnchorLinks(body, reference)

		if body != expected {
			report.Issues = append(report.Issues, interfaces.Issue{
				Kind:    interfaces.IssueExcerptDrift,
				File:    file,
				Line:    driftLine(body, expected) + 4,
				Message: fmt.Sprintf("body diverges from section %q in %s", section.Title, reference),
			})
		}
	}
}

// corpusFiles lists the Markdown files belonging to the corpus: everything at
// the root except the full reference, plus the chapters directory.
func (v *Validator) corpusFiles() ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(v.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("validate: read corpus dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || name == v.cfg.Reference {
			continue
		}
		files = append(files, name)
	}

	chapterEntries, err := fs.ReadDir(v.fsys, corpus.ChaptersDirName)
	if err == nil {
		for _, entry := range chapterEntries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			files = append(files, corpus.ChaptersDirName+"/"+entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// driftLine returns the 0-based line where two bodies first diverge.
func driftLine(got, want string) int {
	gotLines := strings.Split(got, "\n")
	wantLines := strings.Split(want, "\n")
	for i := 0; i < len(gotLines) && i < len(wantLines); i++ {
		if gotLines[i] != wantLines[i] {
			return i
		}
	}
	if len(gotLines) < len(wantLines) {
		return len(gotLines)
	}
	return len(wantLines)
}
