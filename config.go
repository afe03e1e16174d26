package refsplit

import "github.com/goliatone/go-refsplit/internal/runtimeconfig"

var (
	ErrCorpusDirRequired         = runtimeconfig.ErrCorpusDirRequired
	ErrCorpusReferenceRequired   = runtimeconfig.ErrCorpusReferenceRequired
	ErrCorpusFeatureRequired     = runtimeconfig.ErrCorpusFeatureRequired
	ErrChaptersPartBudgetInvalid = runtimeconfig.ErrChaptersPartBudgetInvalid
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	CorpusConfig         = runtimeconfig.CorpusConfig
	ChaptersConfig       = runtimeconfig.ChaptersConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	Features             = runtimeconfig.Features
	CommandsConfig       = runtimeconfig.CommandsConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
