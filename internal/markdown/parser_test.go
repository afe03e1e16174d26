package markdown

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Zig Build System" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Slug != "zig-build-system" {
		t.Fatalf("FrontMatter Slug mismatch, got %q", fm.Slug)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "zig" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.Custom["custom_flag"] != true {
		t.Fatalf("FrontMatter Custom flag missing: %#v", fm.Custom)
	}
	if fm.Raw["summary"] != "Notes on the build system chapter" {
		t.Fatalf("FrontMatter Raw summary missing: %#v", fm.Raw)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# Zig Build System") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterPassesThroughPlainDocuments(t *testing.T) {
	source := []byte("# Heading\n\nno frontmatter here\n")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "" {
		t.Fatalf("expected empty title, got %q", fm.Title)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body to pass through unchanged, got %q", string(body))
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("testdata/basic.md", "0.15.1", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "testdata/basic.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.Version != "0.15.1" {
		t.Fatalf("expected Version to be 0.15.1, got %q", doc.Version)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
}

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestGoldmarkParser_AutoHeadingIDs(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("## Comptime Parameters\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !strings.Contains(string(html), `id="`) {
		t.Fatalf("expected auto heading id in HTML output, got %q", string(html))
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
