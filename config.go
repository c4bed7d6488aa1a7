package rulekeep

import "github.com/rulekeep/rulekeep/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired       = runtimeconfig.ErrDefaultLocaleRequired
	ErrStorageProviderUnknown      = runtimeconfig.ErrStorageProviderUnknown
	ErrTranslationProviderUnknown  = runtimeconfig.ErrTranslationProviderUnknown
	ErrTranslationBatchSizeInvalid = runtimeconfig.ErrTranslationBatchSizeInvalid
	ErrTranslationDelayInvalid     = runtimeconfig.ErrTranslationDelayInvalid
	ErrLLMEndpointRequired         = runtimeconfig.ErrLLMEndpointRequired
	ErrLLMModelRequired            = runtimeconfig.ErrLLMModelRequired
	ErrLoggingProviderRequired     = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown      = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid         = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid        = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheTTLInvalid             = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config            = runtimeconfig.Config
	I18NConfig        = runtimeconfig.I18NConfig
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	TranslationConfig = runtimeconfig.TranslationConfig
	DelayConfig       = runtimeconfig.DelayConfig
	LLMConfig         = runtimeconfig.LLMConfig
	Features          = runtimeconfig.Features
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
