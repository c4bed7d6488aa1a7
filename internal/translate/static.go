package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

// StaticTranslator is a deterministic offline translator for development and
// tests. Each output is the source text tagged with the target locale, so
// results are recognizable and stable across runs.
type StaticTranslator struct{}

var _ interfaces.Translator = (*StaticTranslator)(nil)

// NewStaticTranslator constructs the offline translator.
func NewStaticTranslator() *StaticTranslator {
	return &StaticTranslator{}
}

// TranslateBatch returns one tagged string per input, in input order.
func (t *StaticTranslator) TranslateBatch(ctx context.Context, texts []string, targetLocale string) ([]string, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}
	if strings.TrimSpace(targetLocale) == "" {
		return nil, fmt.Errorf("translate: target locale is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = fmt.Sprintf("[%s] %s", targetLocale, text)
	}
	return out, nil
}
