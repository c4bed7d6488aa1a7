package translation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rulekeep/rulekeep/internal/catalog"
)

// WorkItem bundles one entity's missing fields with their source texts.
// Fields and SourceTexts are aligned one to one and immutable once the item
// is enqueued; the whole bundle goes to the provider in a single call so the
// entity's update stays atomic.
type WorkItem struct {
	Kind        catalog.Kind
	EntityID    uuid.UUID
	Fields      []catalog.Field
	SourceTexts []string
}

// SelectWork derives the ordered work list for one entity kind. Entities
// keep their caller-supplied ordering. An entity with no missing fields
// produces no item; an entity whose required source text is itself blank is
// excluded entirely and reported as a SelectionError.
//
// A field needs work strictly when its own translated value is blank. Each
// field is judged independently, never against a sibling field's state.
func SelectWork(entities []catalog.Entity, translations map[uuid.UUID]*catalog.Translation) ([]WorkItem, []*SelectionError) {
	items := make([]WorkItem, 0, len(entities))
	var skipped []*SelectionError

	for _, entity := range entities {
		kind := entity.EntityKind()
		record := translations[entity.EntityID()]

		item := WorkItem{Kind: kind, EntityID: entity.EntityID()}
		var malformed *SelectionError
		for _, field := range kind.RequiredFields() {
			if !isBlank(record.Value(field)) {
				continue
			}
			source, ok := entity.SourceText(field)
			if !ok || strings.TrimSpace(source) == "" {
				malformed = &SelectionError{Kind: kind, EntityID: entity.EntityID(), Field: field}
				break
			}
			item.Fields = append(item.Fields, field)
			item.SourceTexts = append(item.SourceTexts, source)
		}

		if malformed != nil {
			skipped = append(skipped, malformed)
			continue
		}
		if len(item.Fields) > 0 {
			items = append(items, item)
		}
	}

	return items, skipped
}
