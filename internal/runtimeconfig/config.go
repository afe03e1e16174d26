package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCorpusDirRequired indicates the corpus root directory is missing.
var ErrCorpusDirRequired = errors.New("refsplit config: corpus directory is required when corpus is enabled")

// ErrCorpusReferenceRequired indicates the full reference file name is missing.
var ErrCorpusReferenceRequired = errors.New("refsplit config: corpus reference file is required when corpus is enabled")
var ErrCorpusFeatureRequired = errors.New("refsplit config: corpus feature must be enabled to configure corpus")
var ErrChaptersPartBudgetInvalid = errors.New("refsplit config: chapter part budget must be zero or positive")
var ErrLoggingProviderRequired = errors.New("refsplit config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("refsplit config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("refsplit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("refsplit config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the toolkit.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Corpus   CorpusConfig
	Chapters ChaptersConfig
	Markdown MarkdownConfig
	Features Features
	Commands CommandsConfig
	Logging  LoggingConfig
}

// CorpusConfig captures the layout of a split corpus on disk.
type CorpusConfig struct {
	// Dir is the corpus root, holding the reference and the split artifacts.
	Dir string
	// Reference names the full one-page document, relative to Dir.
	Reference  string
	IndexTitle string
}

// ChaptersConfig captures chapter build behaviour.
type ChaptersConfig struct {
	// PlanPath points at a YAML chapter plan; empty selects the built-in plan.
	PlanPath string
	// MaxPartBytes caps each chapter part; zero selects the default budget.
	MaxPartBytes int
}

// MarkdownConfig captures filesystem and parser behaviour for source loading.
type MarkdownConfig struct {
	Pattern         string
	Recursive       bool
	VersionPatterns map[string]string
	DefaultVersion  string
	Parser          MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Features toggles module functionality.
type Features struct {
	Corpus bool
	Logger bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
	AutoRegisterCron       bool
	ValidateCron           string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a Zig 0.15.1 reference corpus.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Corpus: CorpusConfig{
			Dir:       ".",
			Reference: "zig-0.15.1.md",
		},
		Chapters: ChaptersConfig{},
		Markdown: MarkdownConfig{
			Pattern:         "*.md",
			Recursive:       true,
			VersionPatterns: map[string]string{},
		},
		Features: Features{
			Corpus: true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.Corpus {
		if strings.TrimSpace(cfg.Corpus.Dir) == "" {
			return ErrCorpusDirRequired
		}
		if strings.TrimSpace(cfg.Corpus.Reference) == "" {
			return ErrCorpusReferenceRequired
		}
	} else {
		if strings.TrimSpace(cfg.Corpus.IndexTitle) != "" {
			return ErrCorpusFeatureRequired
		}
	}
	if cfg.Chapters.MaxPartBytes < 0 {
		return ErrChaptersPartBudgetInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
