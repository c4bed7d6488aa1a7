package catalog

import (
	"context"
	"errors"

	rkcatalog "github.com/rulekeep/rulekeep/catalog"
	"github.com/google/uuid"
)

var (
	// ErrStoreUnavailable reports a store constructed without its backing
	// database.
	ErrStoreUnavailable = errors.New("catalog: store requires a database")
	// ErrTranslationInvalid reports a translation row missing its kind,
	// entity id, or locale.
	ErrTranslationInvalid = errors.New("catalog: translation requires kind, entity id, and locale")
)

// Store is the persistence gateway for catalog entities and their
// translations. Entity rows carry the fixed source-language fields and are
// never mutated by the translation pipeline; translation rows are written
// one entity at a time so a single provider result lands atomically.
type Store interface {
	ListChapters(ctx context.Context) ([]*Chapter, error)
	ListSections(ctx context.Context) ([]*Section, error)
	ListKeywords(ctx context.Context) ([]*Keyword, error)
	ListSpecialRules(ctx context.Context) ([]*SpecialRule, error)
	ListCharacteristics(ctx context.Context) ([]*Characteristic, error)

	// ListEntities dispatches to the kind-specific listing, preserving the
	// natural catalog ordering (position for book content, name otherwise).
	ListEntities(ctx context.Context, kind Kind) ([]Entity, error)

	// GetTranslation returns the stored translation for one entity and
	// locale, or a NotFoundError.
	GetTranslation(ctx context.Context, kind Kind, entityID uuid.UUID, locale string) (*Translation, error)

	// ListTranslations returns every stored translation for a kind and
	// locale, keyed by entity id.
	ListTranslations(ctx context.Context, kind Kind, locale string) (map[uuid.UUID]*Translation, error)

	// UpsertTranslation writes a translation row keyed by
	// (kind, entity id, locale). Existing field values are only replaced
	// when the incoming record carries a non-nil value for them.
	UpsertTranslation(ctx context.Context, record *Translation) (*Translation, error)
}

// LocaleRepository resolves catalog locales.
type LocaleRepository interface {
	GetByCode(ctx context.Context, code string) (*Locale, error)
	List(ctx context.Context) ([]*Locale, error)
}

func validateTranslation(record *Translation) error {
	if record == nil {
		return ErrTranslationInvalid
	}
	if !record.EntityKind.Valid() || record.EntityID == uuid.Nil || record.Locale == "" {
		return ErrTranslationInvalid
	}
	return nil
}

// mergeTranslation copies non-nil field values from src onto dst, leaving
// already-stored values in place otherwise.
func mergeTranslation(dst, src *Translation) {
	for _, field := range []Field{rkcatalog.FieldTitle, rkcatalog.FieldContent, rkcatalog.FieldName, rkcatalog.FieldDescription} {
		if value := src.Value(field); value != nil {
			dst.Set(field, *value)
		}
	}
}
