package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

// SectionIndexFileName is the per-section navigation index at the corpus root.
const SectionIndexFileName = "README.md"

// Config carries the settings shared by the splitter and chapter builder.
type Config struct {
	// CorpusDir is the directory holding the full reference and receiving
	// the generated files (e.g. docs/zig/0.15.1).
	CorpusDir string
	// Reference is the full one-page document, relative to CorpusDir.
	Reference string
	// IndexTitle heads the generated README.md (e.g. "Zig 0.15.1 Reference (Split)").
	IndexTitle string
}

// Splitter splits the full reference into per-section files plus an index.
type Splitter struct {
	cfg    Config
	fsys   fs.FS
	writer artifactWriter
	logger interfaces.Logger
	now    func() time.Time
}

var _ interfaces.SplitterService = (*Splitter)(nil)

// NewSplitter constructs a splitter over the configured corpus directory.
func NewSplitter(cfg Config, provider interfaces.LoggerProvider) (*Splitter, error) {
	fsys, err := corpusFS(cfg.CorpusDir)
	if err != nil {
		return nil, err
	}
	return &Splitter{
		cfg:    cfg,
		fsys:   fsys,
		writer: newOSWriter(cfg.CorpusDir),
		logger: logging.CorpusLogger(provider),
		now:    time.Now,
	}, nil
}

// Split scans the full reference and writes one NN-slug.md file per top-level
// section, plus the README.md index. Under dry-run the same plan is computed
// and reported without touching the filesystem.
func (s *Splitter) Split(ctx context.Context, opts interfaces.SplitOptions) (*interfaces.SplitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reference := referenceName(opts.Reference, s.cfg.Reference)
	lines, err := readReferenceLines(s.fsys, reference)
	if err != nil {
		return nil, err
	}

	sections := ScanSections(lines)
	if len(sections) == 0 {
		return nil, fmt.Errorf("corpus split: no top-level sections found in %s", reference)
	}

	writer := s.writer
	if opts.DryRun {
		writer = noopWriter{}
	}

	manifest, err := LoadManifest(s.fsys)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	result := &interfaces.SplitResult{DryRun: opts.DryRun}

	indexLines := []string{
		"# " + indexTitle(s.cfg.IndexTitle, reference),
		"",
		"This is a split, easier-to-browse version of the one-page reference.",
		"",
		fmt.Sprintf("- Full one-page reference: `%s`", reference),
		"",
		"## Sections",
		"",
	}

	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		filename := fmt.Sprintf("%02d-%s.md", section.Index, section.Slug)
		content := renderSectionFile(lines, section, reference)
		record := artifactRecord(filename, interfaces.ArtifactSection, section.Title, content)

		if manifest.Unchanged(record.Path, record.Checksum) {
			s.logger.Debug("corpus.split.section_unchanged", "path", record.Path)
		} else if err := writer.WriteFile(ctx, writeRequest{Path: record.Path, Content: content}); err != nil {
			return nil, fmt.Errorf("corpus split: write %s: %w", record.Path, err)
		}

		manifest.Record(record, now)
		result.Sections = append(result.Sections, record)

		indexLines = append(indexLines, fmt.Sprintf("- [%02d. %s](%s)", section.Index, section.Title, filename))
	}

	indexContent := []byte(strings.Join(indexLines, "\n") + "\n")
	indexRecord := artifactRecord(SectionIndexFileName, interfaces.ArtifactIndex, "", indexContent)
	if err := writer.WriteFile(ctx, writeRequest{Path: indexRecord.Path, Content: indexContent}); err != nil {
		return nil, fmt.Errorf("corpus split: write %s: %w", indexRecord.Path, err)
	}
	manifest.Record(indexRecord, now)
	result.Index = indexRecord

	if !opts.DryRun {
		if err := writeManifest(ctx, writer, manifest, now); err != nil {
			return nil, err
		}
	}

	logging.WithCorpusContext(s.logger, reference, "", "split").Info(
		"corpus.split.completed",
		"section_count", len(result.Sections),
		"dry_run", opts.DryRun,
	)
	return result, nil
}

// renderSectionFile produces the full byte content of one section file: a
// provenance comment, navigation links back to the index and the full
// reference, then the section body with anchor-only links redirected at the
// reference.
func renderSectionFile(lines []string, section Section, reference string) []byte {
	body := SectionBody(lines, section)

	content := make([]string, 0, len(body)+3)
	content = append(content,
		fmt.Sprintf("<!-- Extracted from %s; section: %s -->", reference, section.Title),
		fmt.Sprintf("[Back to index](%s)  |  Full reference: %s", SectionIndexFileName, reference),
		"",
	)
	content = append(content, body...)

	text := strings.Join(content, "\n") + "\n"
	return []byte(RewriteAnchorLinks(text, reference))
}

func artifactRecord(path string, kind interfaces.ArtifactKind, title string, content []byte) interfaces.ArtifactRecord {
	sum := sha256.Sum256(content)
	return interfaces.ArtifactRecord{
		Path:     path,
		Kind:     kind,
		Title:    title,
		Checksum: hex.EncodeToString(sum[:]),
		Size:     int64(len(content)),
	}
}

func writeManifest(ctx context.Context, writer artifactWriter, manifest *Manifest, now time.Time) error {
	manifest.GeneratedAt = now
	data, err := manifest.Marshal()
	if err != nil {
		return fmt.Errorf("corpus: marshal manifest: %w", err)
	}
	if err := writer.WriteFile(ctx, writeRequest{Path: ManifestFileName, Content: data}); err != nil {
		return fmt.Errorf("corpus: write manifest: %w", err)
	}
	return nil
}

func readReferenceLines(fsys fs.FS, reference string) ([]string, error) {
	data, err := fs.ReadFile(fsys, reference)
	if err != nil {
		return nil, fmt.Errorf("corpus: read reference %s: %w", reference, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
}

func referenceName(override, fallback string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	return fallback
}

func indexTitle(configured, reference string) string {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return trimmed
	}
	return strings.TrimSuffix(reference, ".md") + " Reference (Split)"
}
