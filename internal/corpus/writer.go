package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// corpusFS roots a read-only filesystem at the corpus directory.
func corpusFS(dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("corpus: stat corpus dir %s: %w", dir, err)
	}
	return os.DirFS(dir), nil
}

// writeRequest describes a file write routed through the artifact writer.
// Paths are slash-separated and relative to the corpus root.
type writeRequest struct {
	Path    string
	Content []byte
}

// artifactWriter abstracts output handling so dry runs and tests can observe
// writes without touching the filesystem.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeRequest) error
}

// newOSWriter returns a writer anchored at root.
func newOSWriter(root string) artifactWriter {
	return &osWriter{root: root}
}

type osWriter struct {
	root string
}

func (w *osWriter) EnsureDir(_ context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return os.MkdirAll(filepath.Join(w.root, filepath.FromSlash(path)), 0o755)
}

func (w *osWriter) WriteFile(ctx context.Context, req writeRequest) error {
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("corpus: write requires path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	full := filepath.Join(w.root, filepath.FromSlash(req.Path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, req.Content, 0o644)
}

// noopWriter drops every write; dry runs use it so planning code paths stay
// identical to real builds.
type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error       { return nil }
func (noopWriter) WriteFile(context.Context, writeRequest) error { return nil }
