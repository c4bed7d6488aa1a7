package translation

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/rulekeep/rulekeep/internal/catalog"
)

// Summary aggregates completeness for one entity kind and locale.
// CompletionRate is a whole percentage, rounded half away from zero; an
// empty collection reports 0 rather than dividing by zero.
type Summary struct {
	Kind           catalog.Kind `json:"kind"`
	Locale         string       `json:"locale"`
	Total          int          `json:"total"`
	Complete       int          `json:"complete"`
	CompletionRate int          `json:"completion_rate"`
}

// IsComplete reports whether the stored translation satisfies every required
// field for the kind. A nil translation is complete only for a kind with no
// required fields.
func IsComplete(kind catalog.Kind, record *catalog.Translation) bool {
	for _, field := range kind.RequiredFields() {
		if isBlank(record.Value(field)) {
			return false
		}
	}
	return true
}

// Summarize rolls per-entity completeness into collection counts. The
// translations map is keyed by entity id, as returned by the store.
func Summarize(kind catalog.Kind, locale string, entities []catalog.Entity, translations map[uuid.UUID]*catalog.Translation) Summary {
	summary := Summary{Kind: kind, Locale: locale, Total: len(entities)}
	for _, entity := range entities {
		if IsComplete(kind, translations[entity.EntityID()]) {
			summary.Complete++
		}
	}
	summary.CompletionRate = completionRate(summary.Complete, summary.Total)
	return summary
}

func completionRate(complete, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(complete) / float64(total) * 100))
}

// isBlank treats a missing value and a whitespace-only value the same way
// for completeness purposes. The nil/empty distinction still matters on
// write, so this check never feeds back into stored values.
func isBlank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
