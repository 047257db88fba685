package press

import (
	"github.com/goliatone/go-press/internal/layout"
	"github.com/goliatone/go-press/internal/publish"
	"github.com/goliatone/go-press/internal/runtimeconfig"
	"github.com/goliatone/go-press/internal/template"
)

var (
	ErrPostsDirRequired         = runtimeconfig.ErrPostsDirRequired
	ErrLayoutsDirRequired       = runtimeconfig.ErrLayoutsDirRequired
	ErrOutputDirRequired        = runtimeconfig.ErrOutputDirRequired
	ErrOutputDirOverlaps        = runtimeconfig.ErrOutputDirOverlaps
	ErrExtensionInvalid         = runtimeconfig.ErrExtensionInvalid
	ErrYieldVariableInvalid     = runtimeconfig.ErrYieldVariableInvalid
	ErrMaxDepthInvalid          = runtimeconfig.ErrMaxDepthInvalid
	ErrMarkdownConverterUnknown = runtimeconfig.ErrMarkdownConverterUnknown
	ErrMarkdownCommandRequired  = runtimeconfig.ErrMarkdownCommandRequired
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

var (
	ErrDocumentNotFound   = layout.ErrDocumentNotFound
	ErrLayoutCycle        = layout.ErrLayoutCycle
	ErrUnmatchedEnd       = template.ErrUnmatchedEnd
	ErrUnterminatedBlock  = template.ErrUnterminatedBlock
	ErrMalformedDirective = template.ErrMalformedDirective
	ErrDraftExists        = publish.ErrDraftExists
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	PublishResult  = publish.Result
	DraftRequest   = publish.DraftRequest
)

// DefaultConfigFile is the config file name looked up in a site root.
const DefaultConfigFile = runtimeconfig.DefaultFile

// DefaultConfig returns the conventional site layout.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig decodes an HCL config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
