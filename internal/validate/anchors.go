package validate

import (
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

// The reference embeds raw HTML anchors alongside Markdown headings, so both
// id= and name= attributes define link targets.
var htmlAnchor = regexp.MustCompile(`(?:id|name)="([^"]+)"`)

// collectAnchors gathers every anchor the reference defines: explicit HTML
// id/name attributes in the source plus the auto heading IDs the Markdown
// parser assigns when rendering. Code blocks cannot leak anchors through the
// rendered pass because the renderer escapes quotes inside them.
func collectAnchors(mdParser interfaces.MarkdownParser, source []byte) (map[string]struct{}, error) {
	anchors := map[string]struct{}{}

	for _, m := range htmlAnchor.FindAllSubmatch(source, -1) {
		anchors[string(m[1])] = struct{}{}
	}

	rendered, err := mdParser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("validate: render reference: %w", err)
	}
	for _, m := range htmlAnchor.FindAllSubmatch(rendered, -1) {
		anchors[string(m[1])] = struct{}{}
	}

	return anchors, nil
}

func corpusDirFS(dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("validate: stat corpus dir %s: %w", dir, err)
	}
	return os.DirFS(dir), nil
}
