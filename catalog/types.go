package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Locale represents a language supported by the rulebook catalog.
type Locale struct {
	bun.BaseModel `bun:"table:locales,alias:l"`

	ID        uuid.UUID `bun:",pk,type:uuid"        json:"id"`
	Code      string    `bun:"code,notnull"         json:"code"`
	Display   string    `bun:"display_name,notnull" json:"display_name"`
	IsDefault bool      `bun:"is_default,notnull,default:false" json:"is_default"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Chapter is a top-level rulebook division. Only the title is localized.
type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:ch"`

	ID        uuid.UUID `bun:",pk,type:uuid"    json:"id"`
	Position  int       `bun:"position,notnull" json:"position"`
	Title     string    `bun:"title,notnull"    json:"title"`
	Summary   *string   `bun:"summary"          json:"summary,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Section is a body of rules text inside a chapter. Title and content are
// both localized.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID        uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	ChapterID uuid.UUID `bun:"chapter_id,notnull,type:uuid" json:"chapter_id"`
	Position  int       `bun:"position,notnull"    json:"position"`
	Title     string    `bun:"title,notnull"       json:"title"`
	Content   string    `bun:"content,notnull"     json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Keyword is a standalone glossary term with a short description.
type Keyword struct {
	bun.BaseModel `bun:"table:keywords,alias:k"`

	ID          uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Name        string    `bun:"name,notnull"       json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// SpecialRule is a named rule shared between units and wargear entries.
type SpecialRule struct {
	bun.BaseModel `bun:"table:special_rules,alias:sr"`

	ID          uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Name        string    `bun:"name,notnull"       json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Characteristic is a stat-line column label. Only the name is localized.
type Characteristic struct {
	bun.BaseModel `bun:"table:characteristics,alias:cc"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull"  json:"name"`
	Position  int       `bun:"position,notnull" json:"position"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Translation stores the localized variant of a catalog entity for one
// locale. Field columns are nullable pointers so an absent translation is
// distinguishable from an explicitly empty one; both count as missing for
// completeness checks, but the distinction survives persistence round-trips.
type Translation struct {
	bun.BaseModel `bun:"table:catalog_translations,alias:ct"`

	ID          uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	EntityKind  Kind      `bun:"entity_kind,notnull"    json:"entity_kind"`
	EntityID    uuid.UUID `bun:"entity_id,notnull,type:uuid" json:"entity_id"`
	Locale      string    `bun:"locale,notnull"         json:"locale"`
	Title       *string   `bun:"title"                  json:"title,omitempty"`
	Content     *string   `bun:"content"                json:"content,omitempty"`
	Name        *string   `bun:"name"                   json:"name,omitempty"`
	Description *string   `bun:"description"            json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Value returns the translated text stored for the supplied field, or nil
// when the field has never been written.
func (t *Translation) Value(field Field) *string {
	if t == nil {
		return nil
	}
	switch field {
	case FieldTitle:
		return t.Title
	case FieldContent:
		return t.Content
	case FieldName:
		return t.Name
	case FieldDescription:
		return t.Description
	default:
		return nil
	}
}

// Set writes the translated text for the supplied field. Unknown fields are
// ignored.
func (t *Translation) Set(field Field, text string) {
	if t == nil {
		return
	}
	switch field {
	case FieldTitle:
		t.Title = &text
	case FieldContent:
		t.Content = &text
	case FieldName:
		t.Name = &text
	case FieldDescription:
		t.Description = &text
	}
}

// Clone returns a deep copy of the translation record.
func (t *Translation) Clone() *Translation {
	if t == nil {
		return nil
	}
	copied := *t
	copied.Title = cloneString(t.Title)
	copied.Content = cloneString(t.Content)
	copied.Name = cloneString(t.Name)
	copied.Description = cloneString(t.Description)
	return &copied
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}

// Entity is the shape shared by every translatable catalog model. SourceText
// reports the base-language text for a field; ok is false when the field does
// not apply to the entity's kind.
type Entity interface {
	EntityID() uuid.UUID
	EntityKind() Kind
	SourceText(field Field) (string, bool)
}

func (c *Chapter) EntityID() uuid.UUID { return c.ID }
func (c *Chapter) EntityKind() Kind    { return KindChapter }

func (c *Chapter) SourceText(field Field) (string, bool) {
	if field == FieldTitle {
		return c.Title, true
	}
	return "", false
}

func (s *Section) EntityID() uuid.UUID { return s.ID }
func (s *Section) EntityKind() Kind    { return KindSection }

func (s *Section) SourceText(field Field) (string, bool) {
	switch field {
	case FieldTitle:
		return s.Title, true
	case FieldContent:
		return s.Content, true
	default:
		return "", false
	}
}

func (k *Keyword) EntityID() uuid.UUID { return k.ID }
func (k *Keyword) EntityKind() Kind    { return KindKeyword }

func (k *Keyword) SourceText(field Field) (string, bool) {
	switch field {
	case FieldName:
		return k.Name, true
	case FieldDescription:
		return k.Description, true
	default:
		return "", false
	}
}

func (r *SpecialRule) EntityID() uuid.UUID { return r.ID }
func (r *SpecialRule) EntityKind() Kind    { return KindSpecialRule }

func (r *SpecialRule) SourceText(field Field) (string, bool) {
	switch field {
	case FieldName:
		return r.Name, true
	case FieldDescription:
		return r.Description, true
	default:
		return "", false
	}
}

func (c *Characteristic) EntityID() uuid.UUID { return c.ID }
func (c *Characteristic) EntityKind() Kind    { return KindCharacteristic }

func (c *Characteristic) SourceText(field Field) (string, bool) {
	if field == FieldName {
		return c.Name, true
	}
	return "", false
}
