package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-refsplit/internal/logging"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

const (
	// ChapterIndexFileName is the chapter navigation index at the corpus root.
	ChapterIndexFileName = "CHAPTERS.md"
	// ChaptersDirName holds the generated chapter part files.
	ChaptersDirName = "chapters"
	// DefaultMaxPartBytes caps each chapter part so downstream consumers can
	// load any single file comfortably.
	DefaultMaxPartBytes = 100_000

	// Oversized blocks with no sub-headings fall back to fixed line chunks.
	fallbackChunkLines = 200
)

// Builder bundles reference sections into themed chapter files plus an index.
type Builder struct {
	cfg    Config
	fsys   fs.FS
	writer artifactWriter
	logger interfaces.Logger
	now    func() time.Time
}

var _ interfaces.ChapterService = (*Builder)(nil)

// NewBuilder constructs a chapter builder over the configured corpus directory.
func NewBuilder(cfg Config, provider interfaces.LoggerProvider) (*Builder, error) {
	fsys, err := corpusFS(cfg.CorpusDir)
	if err != nil {
		return nil, err
	}
	return &Builder{
		cfg:    cfg,
		fsys:   fsys,
		writer: newOSWriter(cfg.CorpusDir),
		logger: logging.CorpusLogger(provider),
		now:    time.Now,
	}, nil
}

// Build resolves the chapter plan against the full reference, packs each
// chapter into parts under the byte budget, and writes the part files plus
// the CHAPTERS.md index.
func (b *Builder) Build(ctx context.Context, opts interfaces.ChapterOptions) (*interfaces.ChapterResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reference := referenceName(opts.Reference, b.cfg.Reference)
	lines, err := readReferenceLines(b.fsys, reference)
	if err != nil {
		return nil, err
	}

	sections := ScanSections(lines)
	if len(sections) == 0 {
		return nil, fmt.Errorf("corpus chapters: no top-level sections found in %s", reference)
	}
	byTitle := make(map[string]Section, len(sections))
	for _, section := range sections {
		byTitle[section.Title] = section
	}

	plan := DefaultPlan()
	if strings.TrimSpace(opts.PlanPath) != "" {
		plan, err = LoadPlan(b.fsys, opts.PlanPath)
		if err != nil {
			return nil, err
		}
	}

	maxBytes := opts.MaxPartBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPartBytes
	}

	writer := b.writer
	if opts.DryRun {
		writer = noopWriter{}
	}
	if err := writer.EnsureDir(ctx, ChaptersDirName); err != nil {
		return nil, fmt.Errorf("corpus chapters: ensure %s: %w", ChaptersDirName, err)
	}

	manifest, err := LoadManifest(b.fsys)
	if err != nil {
		return nil, err
	}
	now := b.now().UTC()

	result := &interfaces.ChapterResult{DryRun: opts.DryRun}

	indexLines := []string{
		"# " + chapterIndexTitle(b.cfg.IndexTitle, reference),
		"",
		"Split into larger, themed chapters for easier loading.",
		"",
		fmt.Sprintf("- Full one-page reference: `%s`", reference),
		fmt.Sprintf("- Per-section split index: `%s`", SectionIndexFileName),
		"",
		"## Chapters",
		"",
	}

	for n, chapter := range plan.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		merged, missing := resolveChapterRanges(chapter, byTitle)
		for _, title := range missing {
			b.logger.Warn("corpus.chapters.section_missing", "chapter", chapter.Title, "section", title)
			result.MissingSections = append(result.MissingSections, title)
		}
		if len(merged) == 0 {
			continue
		}

		parts := packChapterParts(lines, merged, maxBytes)
		for partIdx, blocks := range parts {
			record, content := renderChapterPart(chapter, blocks, chapterPartMeta{
				Ordinal:   n + 1,
				Part:      partIdx + 1,
				Parts:     len(parts),
				Reference: reference,
			})
			if manifest.Unchanged(record.Path, record.Checksum) {
				b.logger.Debug("corpus.chapters.part_unchanged", "path", record.Path)
			} else if err := writer.WriteFile(ctx, writeRequest{Path: record.Path, Content: content}); err != nil {
				return nil, fmt.Errorf("corpus chapters: write %s: %w", record.Path, err)
			}
			manifest.Record(record, now)
			result.Parts = append(result.Parts, record)

			label := chapter.Title
			if partIdx > 0 {
				label = fmt.Sprintf("%s (Part %d)", chapter.Title, partIdx+1)
			}
			indexLines = append(indexLines, fmt.Sprintf("- [%02d. %s](%s)", n+1, label, record.Path))
		}
	}

	indexContent := []byte(strings.Join(indexLines, "\n") + "\n")
	indexRecord := artifactRecord(ChapterIndexFileName, interfaces.ArtifactIndex, "", indexContent)
	if err := writer.WriteFile(ctx, writeRequest{Path: indexRecord.Path, Content: indexContent}); err != nil {
		return nil, fmt.Errorf("corpus chapters: write %s: %w", indexRecord.Path, err)
	}
	manifest.Record(indexRecord, now)
	result.Index = indexRecord

	if !opts.DryRun {
		if err := writeManifest(ctx, writer, manifest, now); err != nil {
			return nil, err
		}
	}

	logging.WithCorpusContext(b.logger, reference, "", "chapters").Info(
		"corpus.chapters.completed",
		"chapter_count", len(plan.Chapters),
		"part_count", len(result.Parts),
		"missing_count", len(result.MissingSections),
		"dry_run", opts.DryRun,
	)
	return result, nil
}

// lineRange is an inclusive 0-based slice of the reference.
type lineRange struct {
	start int
	end   int
}

// resolveChapterRanges maps the chapter's section titles onto scanned ranges,
// sorted by document order with contiguous or overlapping ranges merged.
func resolveChapterRanges(chapter Chapter, byTitle map[string]Section) ([]lineRange, []string) {
	var ranges []lineRange
	var missing []string
	for _, title := range chapter.Sections {
		section, ok := byTitle[title]
		if !ok {
			missing = append(missing, title)
			continue
		}
		ranges = append(ranges, lineRange{start: section.Start, end: section.End})
	}
	if len(ranges) == 0 {
		return nil, missing
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	merged := []lineRange{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end+1 {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged, missing
}

// packChapterParts turns merged ranges into ordered part payloads, each a
// list of rendered blocks staying under the byte budget. A block larger than
// the budget arriving on an empty part is sub-split at "### [" headings, then
// "#### [", then fixed-size line chunks. With content already buffered the
// part is flushed and the oversized block becomes its own over-budget part,
// keeping its section heading and preamble intact.
func packChapterParts(lines []string, merged []lineRange, maxBytes int) [][]string {
	var parts [][]string
	var current []string
	currentBytes := 0

	flush := func() {
		if len(current) > 0 {
			parts = append(parts, current)
			current = nil
			currentBytes = 0
		}
	}

	appendBlock := func(block string) {
		size := len(block)
		if currentBytes+size > maxBytes && len(current) > 0 {
			flush()
		}
		current = append(current, block)
		currentBytes += size
	}

	for _, r := range merged {
		body := TrimTrailingDivs(append([]string(nil), lines[r.start:r.end+1]...))
		block := strings.Join(body, "\n") + "\n"
		if len(block) > maxBytes && len(current) == 0 {
			for _, sub := range splitLargeBlock(body) {
				appendBlock(sub)
			}
			continue
		}
		appendBlock(block)
	}
	flush()
	return parts
}

// splitLargeBlock cuts an oversized section at sub-headings, preferring the
// coarser marker, and falls back to fixed line chunks when the section has no
// sub-structure at all.
func splitLargeBlock(body []string) []string {
	for _, marker := range []string{"### [", "#### ["} {
		if parts := splitByHeading(body, marker); parts != nil {
			blocks := make([]string, 0, len(parts))
			for _, part := range parts {
				blocks = append(blocks, strings.Join(part, "\n")+"\n")
			}
			return blocks
		}
	}

	var blocks []string
	for i := 0; i < len(body); i += fallbackChunkLines {
		end := i + fallbackChunkLines
		if end > len(body) {
			end = len(body)
		}
		blocks = append(blocks, strings.Join(body[i:end], "\n")+"\n")
	}
	return blocks
}

type chapterPartMeta struct {
	Ordinal   int
	Part      int
	Parts     int
	Reference string
}

// renderChapterPart produces the full byte content and artifact record for
// one chapter part file.
func renderChapterPart(chapter Chapter, blocks []string, meta chapterPartMeta) (interfaces.ArtifactRecord, []byte) {
	titleSuffix := ""
	if meta.Part > 1 {
		titleSuffix = fmt.Sprintf(" (Part %d)", meta.Part)
	}

	header := []string{
		fmt.Sprintf("<!-- Auto-generated chapter from %s -->", meta.Reference),
		fmt.Sprintf("[Back to chapters index](../%s)  |  Split sections: ../%s  |  Full reference: ../%s",
			ChapterIndexFileName, SectionIndexFileName, meta.Reference),
		"",
		fmt.Sprintf("# %s%s", chapter.Title, titleSuffix),
		"",
		"Included sections:",
	}
	for _, title := range chapter.Sections {
		header = append(header, "- "+title)
	}
	header = append(header, "")

	text := strings.Join(append(header, blocks...), "\n")
	text = RewriteAnchorLinks(text, "../"+meta.Reference)

	name := fmt.Sprintf("%02d-%s", meta.Ordinal, Slugify(chapter.Title))
	if meta.Part > 1 {
		name = fmt.Sprintf("%s-part-%d", name, meta.Part)
	}
	path := ChaptersDirName + "/" + name + ".md"

	content := []byte(text + "\n")
	record := artifactRecord(path, interfaces.ArtifactChapter, chapter.Title+titleSuffix, content)
	return record, content
}

func chapterIndexTitle(configured, reference string) string {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		// The configured title names the split index; chapters get their own.
		return strings.Replace(trimmed, "(Split)", "(Chapters)", 1)
	}
	return strings.TrimSuffix(reference, ".md") + " Reference (Chapters)"
}
