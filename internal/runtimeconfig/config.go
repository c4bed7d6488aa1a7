package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrDefaultLocaleRequired       = errors.New("rulekeep config: default locale is required")
	ErrStorageProviderUnknown      = errors.New("rulekeep config: storage provider is invalid")
	ErrTranslationProviderUnknown  = errors.New("rulekeep config: translation provider is invalid")
	ErrTranslationBatchSizeInvalid = errors.New("rulekeep config: translation batch size must be positive")
	ErrTranslationDelayInvalid     = errors.New("rulekeep config: translation delays must be zero or positive")
	ErrLLMEndpointRequired         = errors.New("rulekeep config: llm endpoint is required when the llm provider is selected")
	ErrLLMModelRequired            = errors.New("rulekeep config: llm model is required when the llm provider is selected")
	ErrLoggingProviderRequired     = errors.New("rulekeep config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown      = errors.New("rulekeep config: logging provider is invalid")
	ErrLoggingLevelInvalid         = errors.New("rulekeep config: logging level is invalid")
	ErrLoggingFormatInvalid        = errors.New("rulekeep config: logging format is invalid")
	ErrCacheTTLInvalid             = errors.New("rulekeep config: cache ttl must be zero or positive")
)

// Storage provider identifiers accepted by StorageConfig.Provider.
const (
	StorageMemory = "memory"
	StorageBun    = "bun"
)

// Translation provider identifiers accepted by TranslationConfig.Provider.
const (
	ProviderLLM    = "llm"
	ProviderStatic = "static"
)

// Config aggregates feature flags and adapter bindings for the module.
type Config struct {
	Enabled       bool
	DefaultLocale string
	I18N          I18NConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Translation   TranslationConfig
	Features      Features
	Logging       LoggingConfig
}

// I18NConfig lists the locales seeded into the catalog. The default locale
// is the fixed source language; it is never a translation target.
type I18NConfig struct {
	Locales []string
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Provider string
}

// CacheConfig toggles read-through caching of catalog repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// TranslationConfig captures batch pipeline tuning and provider selection.
type TranslationConfig struct {
	Provider  string
	BatchSize int
	Delays    DelayConfig
	LLM       LLMConfig
}

// DelayConfig holds the unconditional inter-call delays applied between
// provider calls, per entity kind. Chapters use a shorter delay than
// sections because chapter payloads are short titles.
type DelayConfig struct {
	Chapters        time.Duration
	Sections        time.Duration
	Keywords        time.Duration
	Rules           time.Duration
	Characteristics time.Duration
}

// LLMConfig configures the chat-completion backed provider client.
type LLMConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Features toggles module functionality.
type Features struct {
	Logger bool
	Audit  bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the canonical defaults: in-memory storage, static
// translator, batch size 8, and the observed inter-call delays.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		I18N: I18NConfig{
			Locales: []string{"en"},
		},
		Storage: StorageConfig{
			Provider: StorageMemory,
		},
		Translation: TranslationConfig{
			Provider:  ProviderStatic,
			BatchSize: 8,
			Delays: DelayConfig{
				Chapters:        500 * time.Millisecond,
				Sections:        time.Second,
				Keywords:        750 * time.Millisecond,
				Rules:           750 * time.Millisecond,
				Characteristics: 750 * time.Millisecond,
			},
			LLM: LLMConfig{
				Timeout: 60 * time.Second,
			},
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}

	switch strings.TrimSpace(c.Storage.Provider) {
	case "", StorageMemory, StorageBun:
	default:
		return ErrStorageProviderUnknown
	}

	if c.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	switch strings.TrimSpace(c.Translation.Provider) {
	case "", ProviderStatic:
	case ProviderLLM:
		if strings.TrimSpace(c.Translation.LLM.Endpoint) == "" {
			return ErrLLMEndpointRequired
		}
		if strings.TrimSpace(c.Translation.LLM.Model) == "" {
			return ErrLLMModelRequired
		}
	default:
		return ErrTranslationProviderUnknown
	}

	if c.Translation.BatchSize < 0 {
		return ErrTranslationBatchSizeInvalid
	}
	for _, delay := range []time.Duration{
		c.Translation.Delays.Chapters,
		c.Translation.Delays.Sections,
		c.Translation.Delays.Keywords,
		c.Translation.Delays.Rules,
		c.Translation.Delays.Characteristics,
	} {
		if delay < 0 {
			return ErrTranslationDelayInvalid
		}
	}

	if c.Features.Logger {
		provider := strings.TrimSpace(c.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" {
			return ErrLoggingProviderUnknown
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
		case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		default:
			return ErrLoggingLevelInvalid
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
		case "", "json", "console", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}

	return nil
}
