package logging

import (
	"maps"

	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

// WithFields attaches structured fields when the logger supports the
// optional FieldsLogger extension. Nil loggers and empty maps pass through
// untouched.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}
