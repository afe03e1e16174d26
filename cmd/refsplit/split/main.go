package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-refsplit/cmd/refsplit/internal/bootstrap"
	corpuscmd "github.com/goliatone/go-refsplit/internal/commands/corpus"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSplit(os.Args[1:]); err != nil {
		log.Fatalf("refsplit split: %v", err)
	}
}

func runSplit(args []string) error {
	fs := flag.NewFlagSet("refsplit-split", flag.ExitOnError)
	corpusDir := fs.String("corpus-dir", ".", "Directory holding the full reference and the split output")
	reference := fs.String("reference", "zig-0.15.1.md", "Full one-page reference file, relative to the corpus directory")
	indexTitle := fs.String("index-title", "", "Title for the generated README.md index")
	logLevel := fs.String("log-level", "info", "Minimum log severity")
	logProvider := fs.String("log-provider", "console", "Logging backend (console or gologger)")
	dryRun := fs.Bool("dry-run", false, "Compute the split plan without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		CorpusDir:   *corpusDir,
		Reference:   *reference,
		IndexTitle:  *indexTitle,
		LogLevel:    *logLevel,
		LogProvider: *logProvider,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := corpuscmd.NewSplitHandler(module.Splitter, module.Logger, corpuscmd.FeatureGates{
		CorpusEnabled: func() bool { return true },
	})
	cmd := corpuscmd.SplitCommand{
		Reference: *reference,
		DryRun:    *dryRun,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute split command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "split command executed successfully")

	return nil
}
