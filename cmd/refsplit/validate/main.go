package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-refsplit/cmd/refsplit/internal/bootstrap"
	corpuscmd "github.com/goliatone/go-refsplit/internal/commands/corpus"
	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := runValidate(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatalf("refsplit validate: %v", err)
	}
	os.Exit(code)
}

func runValidate(args []string, out io.Writer) (int, error) {
	fs := flag.NewFlagSet("refsplit-validate", flag.ExitOnError)
	corpusDir := fs.String("corpus-dir", ".", "Directory holding the corpus to validate")
	reference := fs.String("reference", "zig-0.15.1.md", "Full one-page reference file, relative to the corpus directory")
	skipExcerpts := fs.Bool("skip-excerpts", false, "Skip the byte-consistency check against the full reference")
	logLevel := fs.String("log-level", "info", "Minimum log severity")
	logProvider := fs.String("log-provider", "console", "Logging backend (console or gologger)")

	if err := fs.Parse(args); err != nil {
		return 1, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		CorpusDir:   *corpusDir,
		Reference:   *reference,
		LogLevel:    *logLevel,
		LogProvider: *logProvider,
	})
	if err != nil {
		return 1, fmt.Errorf("bootstrap module: %w", err)
	}

	var report *interfaces.Report
	handler := corpuscmd.NewValidateHandler(module.Validator, module.Logger, corpuscmd.FeatureGates{
		CorpusEnabled: func() bool { return true },
	}, func(r *interfaces.Report) {
		report = r
	})
	cmd := corpuscmd.ValidateCommand{
		Reference:    *reference,
		SkipExcerpts: *skipExcerpts,
	}

	execErr := handler.Execute(context.Background(), cmd)
	if report != nil {
		printReport(out, report)
	}
	if execErr != nil {
		if errors.Is(execErr, corpuscmd.ErrConsistencyIssues) {
			return 1, nil
		}
		return 1, fmt.Errorf("execute validate command: %w", execErr)
	}

	fmt.Fprintln(out, "corpus is consistent")
	return 0, nil
}

func printReport(out io.Writer, report *interfaces.Report) {
	fmt.Fprintf(out, "checked %d files, %d issues\n", report.Checked, len(report.Issues))
	for _, issue := range report.Issues {
		if issue.Line > 0 {
			fmt.Fprintf(out, "  [%s] %s:%d %s\n", issue.Kind, issue.File, issue.Line, issue.Message)
			continue
		}
		fmt.Fprintf(out, "  [%s] %s %s\n", issue.Kind, issue.File, issue.Message)
	}
}
