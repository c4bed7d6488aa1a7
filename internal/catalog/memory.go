package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	rkcatalog "github.com/rulekeep/rulekeep/catalog"
)

// MemoryStore is an in-memory catalog store for scaffolding and tests. It
// mirrors the BunStore contract, including natural ordering and clone-on-read
// so callers never share mutable state with the store.
type MemoryStore struct {
	mu              sync.RWMutex
	chapters        map[uuid.UUID]*Chapter
	sections        map[uuid.UUID]*Section
	keywords        map[uuid.UUID]*Keyword
	specialRules    map[uuid.UUID]*SpecialRule
	characteristics map[uuid.UUID]*Characteristic
	translations    map[translationIndexKey]*Translation
}

type translationIndexKey struct {
	kind     Kind
	entityID uuid.UUID
	locale   string
}

// NewMemoryStore creates an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chapters:        make(map[uuid.UUID]*Chapter),
		sections:        make(map[uuid.UUID]*Section),
		keywords:        make(map[uuid.UUID]*Keyword),
		specialRules:    make(map[uuid.UUID]*SpecialRule),
		characteristics: make(map[uuid.UUID]*Characteristic),
		translations:    make(map[translationIndexKey]*Translation),
	}
}

// PutChapter inserts or replaces a chapter.
func (m *MemoryStore) PutChapter(record *Chapter) *Chapter {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	copied.Summary = cloneOptional(record.Summary)
	m.chapters[copied.ID] = &copied
	returned := copied
	return &returned
}

// PutSection inserts or replaces a section.
func (m *MemoryStore) PutSection(record *Section) *Section {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.sections[copied.ID] = &copied
	returned := copied
	return &returned
}

// PutKeyword inserts or replaces a keyword.
func (m *MemoryStore) PutKeyword(record *Keyword) *Keyword {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.keywords[copied.ID] = &copied
	returned := copied
	return &returned
}

// PutSpecialRule inserts or replaces a special rule.
func (m *MemoryStore) PutSpecialRule(record *SpecialRule) *SpecialRule {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.specialRules[copied.ID] = &copied
	returned := copied
	return &returned
}

// PutCharacteristic inserts or replaces a characteristic.
func (m *MemoryStore) PutCharacteristic(record *Characteristic) *Characteristic {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.characteristics[copied.ID] = &copied
	returned := copied
	return &returned
}

func (m *MemoryStore) ListChapters(_ context.Context) ([]*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Chapter, 0, len(m.chapters))
	for _, rec := range m.chapters {
		copied := *rec
		copied.Summary = cloneOptional(rec.Summary)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *MemoryStore) ListSections(_ context.Context) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Section, 0, len(m.sections))
	for _, rec := range m.sections {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChapterID != out[j].ChapterID {
			return out[i].ChapterID.String() < out[j].ChapterID.String()
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (m *MemoryStore) ListKeywords(_ context.Context) ([]*Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Keyword, 0, len(m.keywords))
	for _, rec := range m.keywords {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) ListSpecialRules(_ context.Context) ([]*SpecialRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*SpecialRule, 0, len(m.specialRules))
	for _, rec := range m.specialRules {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) ListCharacteristics(_ context.Context) ([]*Characteristic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Characteristic, 0, len(m.characteristics))
	for _, rec := range m.characteristics {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *MemoryStore) ListEntities(ctx context.Context, kind Kind) ([]Entity, error) {
	switch kind {
	case KindChapter:
		records, err := m.ListChapters(ctx)
		return entitySlice(records), err
	case KindSection:
		records, err := m.ListSections(ctx)
		return entitySlice(records), err
	case KindKeyword:
		records, err := m.ListKeywords(ctx)
		return entitySlice(records), err
	case KindSpecialRule:
		records, err := m.ListSpecialRules(ctx)
		return entitySlice(records), err
	case KindCharacteristic:
		records, err := m.ListCharacteristics(ctx)
		return entitySlice(records), err
	default:
		return nil, fmt.Errorf("catalog: list entities: %w", rkcatalog.ErrUnknownKind)
	}
}

func (m *MemoryStore) GetTranslation(_ context.Context, kind Kind, entityID uuid.UUID, locale string) (*Translation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.translations[translationIndexKey{kind: kind, entityID: entityID, locale: locale}]
	if !ok {
		return nil, &NotFoundError{Resource: "translation", Key: translationKey(kind, entityID, locale)}
	}
	return rec.Clone(), nil
}

func (m *MemoryStore) ListTranslations(_ context.Context, kind Kind, locale string) (map[uuid.UUID]*Translation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[uuid.UUID]*Translation)
	for key, rec := range m.translations {
		if key.kind == kind && key.locale == locale {
			out[key.entityID] = rec.Clone()
		}
	}
	return out, nil
}

func (m *MemoryStore) UpsertTranslation(_ context.Context, record *Translation) (*Translation, error) {
	if err := validateTranslation(record); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := translationIndexKey{kind: record.EntityKind, entityID: record.EntityID, locale: record.Locale}
	now := time.Now().UTC()
	existing, ok := m.translations[key]
	if !ok {
		fresh := record.Clone()
		if fresh.ID == uuid.Nil {
			fresh.ID = uuid.New()
		}
		if fresh.CreatedAt.IsZero() {
			fresh.CreatedAt = now
		}
		fresh.UpdatedAt = now
		m.translations[key] = fresh
		return fresh.Clone(), nil
	}
	mergeTranslation(existing, record)
	existing.UpdatedAt = now
	return existing.Clone(), nil
}

// MemoryLocaleRepository is an in-memory locale registry.
type MemoryLocaleRepository struct {
	mu      sync.RWMutex
	locales map[string]*Locale
}

// NewMemoryLocaleRepository creates an empty in-memory locale repository.
func NewMemoryLocaleRepository() *MemoryLocaleRepository {
	return &MemoryLocaleRepository{locales: make(map[string]*Locale)}
}

// Create registers a locale keyed by code.
func (m *MemoryLocaleRepository) Create(_ context.Context, record *Locale) (*Locale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	copied.Code = strings.ToLower(strings.TrimSpace(copied.Code))
	m.locales[copied.Code] = &copied
	returned := copied
	return &returned, nil
}

func (m *MemoryLocaleRepository) GetByCode(_ context.Context, code string) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.locales[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, &NotFoundError{Resource: "locale", Key: code}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryLocaleRepository) List(_ context.Context) ([]*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Locale, 0, len(m.locales))
	for _, rec := range m.locales {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func cloneOptional(s *string) *string {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
