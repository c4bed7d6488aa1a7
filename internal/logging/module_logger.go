package logging

import (
	"context"

	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

const (
	rootModule        = "rulekeep"
	catalogModule     = "rulekeep.catalog"
	translationModule = "rulekeep.translation"
	translateModule   = "rulekeep.translate"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per subsystem.
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

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CatalogLogger returns the logger namespace reserved for the catalog store.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// TranslationLogger returns the logger namespace reserved for the batch
// translation pipeline.
func TranslationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translationModule)
}

// TranslateClientLogger returns the logger namespace reserved for provider
// clients.
func TranslateClientLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translateModule)
}

// NoOp returns a logger that drops every entry so services can run with
// logging disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
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
