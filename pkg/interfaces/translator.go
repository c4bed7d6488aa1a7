package interfaces

import (
	"context"
	"errors"
)

// ErrProviderUnavailable reports that no translation provider is configured.
var ErrProviderUnavailable = errors.New("translator: provider unavailable")

// Translator is the boundary to an external translation provider. The call
// is all-or-nothing: implementations return one translated string per input
// string, in input order, or fail as a unit. A partial or reordered response
// must surface as an error, never as a short result slice.
type Translator interface {
	TranslateBatch(ctx context.Context, texts []string, targetLocale string) ([]string, error)
}
