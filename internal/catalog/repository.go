package catalog

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewLocaleRepository(db *bun.DB) repository.Repository[*Locale] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Locale]{
		NewRecord: func() *Locale { return &Locale{} },
		GetID: func(l *Locale) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Locale, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Locale) string {
			return l.Code
		},
	})
}

func NewChapterRepository(db *bun.DB) repository.Repository[*Chapter] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Chapter]{
		NewRecord: func() *Chapter { return &Chapter{} },
		GetID: func(c *Chapter) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Chapter, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *Chapter) string {
			return c.ID.String()
		},
	})
}

func NewSectionRepository(db *bun.DB) repository.Repository[*Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Section]{
		NewRecord: func() *Section { return &Section{} },
		GetID: func(s *Section) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Section, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *Section) string {
			return s.ID.String()
		},
	})
}

func NewKeywordRepository(db *bun.DB) repository.Repository[*Keyword] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Keyword]{
		NewRecord: func() *Keyword { return &Keyword{} },
		GetID: func(k *Keyword) uuid.UUID {
			return k.ID
		},
		SetID: func(k *Keyword, id uuid.UUID) {
			k.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(k *Keyword) string {
			return k.Name
		},
	})
}

func NewSpecialRuleRepository(db *bun.DB) repository.Repository[*SpecialRule] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SpecialRule]{
		NewRecord: func() *SpecialRule { return &SpecialRule{} },
		GetID: func(r *SpecialRule) uuid.UUID {
			return r.ID
		},
		SetID: func(r *SpecialRule, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(r *SpecialRule) string {
			return r.Name
		},
	})
}

func NewCharacteristicRepository(db *bun.DB) repository.Repository[*Characteristic] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Characteristic]{
		NewRecord: func() *Characteristic { return &Characteristic{} },
		GetID: func(c *Characteristic) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Characteristic, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(c *Characteristic) string {
			return c.Name
		},
	})
}

func NewTranslationRepository(db *bun.DB) repository.Repository[*Translation] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Translation]{
		NewRecord: func() *Translation { return &Translation{} },
		GetID: func(t *Translation) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Translation, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *Translation) string {
			if t == nil {
				return ""
			}
			return t.ID.String()
		},
	})
}
