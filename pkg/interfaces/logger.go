package interfaces

import "context"

// Logger is the leveled logging contract used across the module. The method
// set matches github.com/goliatone/go-logger so hosts running that package
// can inject their loggers directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers, typically one child logger per
// module namespace.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for loggers that can attach
// persistent structured fields. Implementations return a new logger that
// carries the fields on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
