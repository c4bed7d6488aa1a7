package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	rkcatalog "github.com/rulekeep/rulekeep/catalog"
	"github.com/uptrace/bun"
)

// BunStore is the SQL-backed catalog store. Entity reads keep the catalog's
// natural ordering; translation writes go through an explicit
// select-then-write upsert keyed by (entity_kind, entity_id, locale).
type BunStore struct {
	chapters        repository.Repository[*Chapter]
	sections        repository.Repository[*Section]
	keywords        repository.Repository[*Keyword]
	specialRules    repository.Repository[*SpecialRule]
	characteristics repository.Repository[*Characteristic]
	translations    repository.Repository[*Translation]
}

func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache constructs a BunStore with optional read caching on
// the entity repositories. The translation repository is never cached: runs
// depend on refetching their own writes.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	return &BunStore{
		chapters:        wrapWithCache(NewChapterRepository(db), cacheService, keySerializer),
		sections:        wrapWithCache(NewSectionRepository(db), cacheService, keySerializer),
		keywords:        wrapWithCache(NewKeywordRepository(db), cacheService, keySerializer),
		specialRules:    wrapWithCache(NewSpecialRuleRepository(db), cacheService, keySerializer),
		characteristics: wrapWithCache(NewCharacteristicRepository(db), cacheService, keySerializer),
		translations:    NewTranslationRepository(db),
	}
}

func (s *BunStore) ListChapters(ctx context.Context) ([]*Chapter, error) {
	records, _, err := s.chapters.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.position ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "chapter", "list")
	}
	return records, nil
}

func (s *BunStore) ListSections(ctx context.Context) ([]*Section, error) {
	records, _, err := s.sections.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.chapter_id ASC, ?TableAlias.position ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "section", "list")
	}
	return records, nil
}

func (s *BunStore) ListKeywords(ctx context.Context) ([]*Keyword, error) {
	records, _, err := s.keywords.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.name ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "keyword", "list")
	}
	return records, nil
}

func (s *BunStore) ListSpecialRules(ctx context.Context) ([]*SpecialRule, error) {
	records, _, err := s.specialRules.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.name ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "special_rule", "list")
	}
	return records, nil
}

func (s *BunStore) ListCharacteristics(ctx context.Context) ([]*Characteristic, error) {
	records, _, err := s.characteristics.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.position ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "characteristic", "list")
	}
	return records, nil
}

func (s *BunStore) ListEntities(ctx context.Context, kind Kind) ([]Entity, error) {
	switch kind {
	case KindChapter:
		records, err := s.ListChapters(ctx)
		return entitySlice(records), err
	case KindSection:
		records, err := s.ListSections(ctx)
		return entitySlice(records), err
	case KindKeyword:
		records, err := s.ListKeywords(ctx)
		return entitySlice(records), err
	case KindSpecialRule:
		records, err := s.ListSpecialRules(ctx)
		return entitySlice(records), err
	case KindCharacteristic:
		records, err := s.ListCharacteristics(ctx)
		return entitySlice(records), err
	default:
		return nil, fmt.Errorf("catalog: list entities: %w", rkcatalog.ErrUnknownKind)
	}
}

func (s *BunStore) GetTranslation(ctx context.Context, kind Kind, entityID uuid.UUID, locale string) (*Translation, error) {
	records, _, err := s.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_kind = ?", string(kind)).
				Where("?TableAlias.entity_id = ?", entityID).
				Where("?TableAlias.locale = ?", locale)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", translationKey(kind, entityID, locale))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "translation", Key: translationKey(kind, entityID, locale)}
	}
	return records[0], nil
}

func (s *BunStore) ListTranslations(ctx context.Context, kind Kind, locale string) (map[uuid.UUID]*Translation, error) {
	records, _, err := s.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_kind = ?", string(kind)).
				Where("?TableAlias.locale = ?", locale)
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", translationKey(kind, uuid.Nil, locale))
	}
	indexed := make(map[uuid.UUID]*Translation, len(records))
	for _, record := range records {
		indexed[record.EntityID] = record
	}
	return indexed, nil
}

func (s *BunStore) UpsertTranslation(ctx context.Context, record *Translation) (*Translation, error) {
	if err := validateTranslation(record); err != nil {
		return nil, err
	}
	existing, err := s.GetTranslation(ctx, record.EntityKind, record.EntityID, record.Locale)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		return s.insertTranslation(ctx, record)
	}
	mergeTranslation(existing, record)
	existing.UpdatedAt = time.Now().UTC()
	updated, err := s.translations.Update(ctx, existing,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns("title", "content", "name", "description", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", translationKey(record.EntityKind, record.EntityID, record.Locale))
	}
	return updated, nil
}

func (s *BunStore) insertTranslation(ctx context.Context, record *Translation) (*Translation, error) {
	fresh := record.Clone()
	if fresh.ID == uuid.Nil {
		fresh.ID = uuid.New()
	}
	now := time.Now().UTC()
	if fresh.CreatedAt.IsZero() {
		fresh.CreatedAt = now
	}
	fresh.UpdatedAt = now
	created, err := s.translations.Create(ctx, fresh)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", translationKey(record.EntityKind, record.EntityID, record.Locale))
	}
	return created, nil
}

// BunLocaleRepository resolves locales from the locales table.
type BunLocaleRepository struct {
	repo repository.Repository[*Locale]
}

func NewBunLocaleRepository(db *bun.DB) *BunLocaleRepository {
	return NewBunLocaleRepositoryWithCache(db, nil, nil)
}

// NewBunLocaleRepositoryWithCache constructs a LocaleRepository with
// optional caching.
func NewBunLocaleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLocaleRepository {
	base := NewLocaleRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunLocaleRepository{repo: wrapped}
}

func (r *BunLocaleRepository) GetByCode(ctx context.Context, code string) (*Locale, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "locale", code)
	}
	return result, nil
}

func (r *BunLocaleRepository) List(ctx context.Context) ([]*Locale, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.code ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "locale", "list")
	}
	return records, nil
}

// Create inserts a locale row. Used by config-driven seeding at startup.
func (r *BunLocaleRepository) Create(ctx context.Context, record *Locale) (*Locale, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "locale", record.Code)
	}
	return created, nil
}

func translationKey(kind Kind, entityID uuid.UUID, locale string) string {
	if entityID == uuid.Nil {
		return fmt.Sprintf("%s/%s", kind, locale)
	}
	return fmt.Sprintf("%s/%s/%s", kind, entityID, locale)
}

func entitySlice[T Entity](records []T) []Entity {
	entities := make([]Entity, 0, len(records))
	for _, record := range records {
		entities = append(entities, record)
	}
	return entities
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
