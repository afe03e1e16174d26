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
	if err := runChapters(os.Args[1:]); err != nil {
		log.Fatalf("refsplit chapters: %v", err)
	}
}

func runChapters(args []string) error {
	fs := flag.NewFlagSet("refsplit-chapters", flag.ExitOnError)
	corpusDir := fs.String("corpus-dir", ".", "Directory holding the full reference and the chapter output")
	reference := fs.String("reference", "zig-0.15.1.md", "Full one-page reference file, relative to the corpus directory")
	planPath := fs.String("plan", "", "YAML chapter plan (defaults to the built-in plan)")
	maxPartBytes := fs.Int("max-part-bytes", 0, "Byte budget per chapter part (0 selects the default)")
	logLevel := fs.String("log-level", "info", "Minimum log severity")
	logProvider := fs.String("log-provider", "console", "Logging backend (console or gologger)")
	dryRun := fs.Bool("dry-run", false, "Compute the chapter plan without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		CorpusDir:    *corpusDir,
		Reference:    *reference,
		PlanPath:     *planPath,
		MaxPartBytes: *maxPartBytes,
		LogLevel:     *logLevel,
		LogProvider:  *logProvider,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := corpuscmd.NewBuildChaptersHandler(module.Chapters, module.Logger, corpuscmd.FeatureGates{
		CorpusEnabled: func() bool { return true },
	})
	cmd := corpuscmd.BuildChaptersCommand{
		Reference:    *reference,
		PlanPath:     module.Config.Chapters.PlanPath,
		MaxPartBytes: module.Config.Chapters.MaxPartBytes,
		DryRun:       *dryRun,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute chapters command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "chapters command executed successfully")

	return nil
}
