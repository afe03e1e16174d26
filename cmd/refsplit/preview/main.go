package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-refsplit/cmd/refsplit/internal/bootstrap"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		corpusDir   = flag.String("corpus-dir", ".", "Directory holding the corpus")
		reference   = flag.String("reference", "zig-0.15.1.md", "Full one-page reference file, relative to the corpus directory")
		filePath    = flag.String("file", "", "Markdown file to preview (relative to the corpus directory)")
		renderHTML  = flag.Bool("render-html", true, "Render markdown body into HTML as part of the preview")
		logLevel    = flag.String("log-level", "info", "Minimum log severity")
		logProvider = flag.String("log-provider", "console", "Logging backend (console or gologger)")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		CorpusDir:   *corpusDir,
		Reference:   *reference,
		LogLevel:    *logLevel,
		LogProvider: *logProvider,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	if module == nil || module.Markdown == nil {
		log.Fatalf("markdown service not configured")
	}

	ctx := context.Background()

	doc, err := module.Markdown.Load(ctx, *filePath, interfaces.LoadOptions{})
	if err != nil {
		log.Fatalf("load markdown document: %v", err)
	}

	if *renderHTML {
		if _, err := module.Markdown.RenderDocument(ctx, doc, interfaces.ParseOptions{}); err != nil {
			log.Fatalf("render markdown: %v", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nVersion: %s\nChecksum: %x\n\n", doc.FilePath, doc.Version, doc.Checksum)

	if doc.FrontMatter.Raw != nil {
		frontmatter, err := json.MarshalIndent(doc.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}

	if *renderHTML {
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(doc.BodyHTML))
	} else {
		fmt.Fprintf(os.Stdout, "Markdown Body:\n%s\n", string(doc.Body))
	}
}
