package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

const (
	rootModule     = "refsplit"
	markdownModule = "refsplit.markdown"
	corpusModule   = "refsplit.corpus"
	validateModule = "refsplit.validate"
)

const (
	fieldCorpusPath    = "corpus_path"
	fieldCorpusVersion = "version"
	fieldCorpusAction  = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger namespace reserved for markdown loading and rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CorpusLogger returns the logger namespace reserved for split and chapter builds.
func CorpusLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, corpusModule)
}

// ValidateLogger returns the logger namespace reserved for corpus validation.
func ValidateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validateModule)
}

// WithCorpusContext enriches the provided logger with common corpus fields
// such as file path, doc-set version, and the action being performed. Empty
// values are ignored.
func WithCorpusContext(logger interfaces.Logger, path, version, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldCorpusPath] = trimmed
	}
	if trimmed := strings.TrimSpace(version); trimmed != "" {
		fields[fieldCorpusVersion] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldCorpusAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

// NoOpProvider returns a provider whose loggers drop every entry. It keeps
// wiring uniform when logging is disabled.
func NoOpProvider() interfaces.LoggerProvider {
	return noopProvider{}
}

type noopProvider struct{}

var _ interfaces.LoggerProvider = noopProvider{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return NoOp()
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
