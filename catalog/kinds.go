package catalog

import "strings"

// Kind identifies a translatable catalog entity type. Each kind carries its
// own required-field set; completeness for a locale means every required
// field has a non-blank translated value.
type Kind string

const (
	KindChapter        Kind = "chapter"
	KindSection        Kind = "section"
	KindKeyword        Kind = "keyword"
	KindSpecialRule    Kind = "special_rule"
	KindCharacteristic Kind = "characteristic"
)

// Kinds lists every known entity kind.
func Kinds() []Kind {
	return []Kind{KindChapter, KindSection, KindKeyword, KindSpecialRule, KindCharacteristic}
}

// Valid reports whether the kind is one of the known entity kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindChapter, KindSection, KindKeyword, KindSpecialRule, KindCharacteristic:
		return true
	default:
		return false
	}
}

// RequiredFields returns the fields that must carry a non-blank translated
// value for an entity of this kind to be complete in a locale. The field
// sets are asymmetric on purpose: chapters localize only their title while
// sections localize title and content.
func (k Kind) RequiredFields() []Field {
	switch k {
	case KindChapter:
		return []Field{FieldTitle}
	case KindSection:
		return []Field{FieldTitle, FieldContent}
	case KindKeyword:
		return []Field{FieldName, FieldDescription}
	case KindSpecialRule:
		return []Field{FieldName, FieldDescription}
	case KindCharacteristic:
		return []Field{FieldName}
	default:
		return nil
	}
}

// ParseKind resolves a kind from its string form.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", ErrUnknownKind
	}
	return kind, nil
}

// Field names a translatable column on a catalog entity. Fields are typed
// accessors rather than per-locale column names, so adding a target locale
// is a data change, not a code change.
type Field string

const (
	FieldTitle       Field = "title"
	FieldContent     Field = "content"
	FieldName        Field = "name"
	FieldDescription Field = "description"
)

// Group names a set of entity kinds that run together in one translation
// batch. Kind order inside a group is significant: chapters run before
// sections so the short chapter titles resolve first and give users early
// visible progress.
type Group string

const (
	// GroupBook covers the rulebook body: chapters, then sections.
	GroupBook Group = "book"
	// GroupKeywords covers the standalone keyword glossary.
	GroupKeywords Group = "keywords"
	// GroupRules covers shared special rules.
	GroupRules Group = "rules"
	// GroupCharacteristics covers stat-line characteristic labels.
	GroupCharacteristics Group = "characteristics"
)

// Groups lists every run group.
func Groups() []Group {
	return []Group{GroupBook, GroupKeywords, GroupRules, GroupCharacteristics}
}

// Valid reports whether the group is known.
func (g Group) Valid() bool {
	switch g {
	case GroupBook, GroupKeywords, GroupRules, GroupCharacteristics:
		return true
	default:
		return false
	}
}

// Kinds returns the ordered entity kinds processed by a run of this group.
func (g Group) Kinds() []Kind {
	switch g {
	case GroupBook:
		return []Kind{KindChapter, KindSection}
	case GroupKeywords:
		return []Kind{KindKeyword}
	case GroupRules:
		return []Kind{KindSpecialRule}
	case GroupCharacteristics:
		return []Kind{KindCharacteristic}
	default:
		return nil
	}
}

// ParseGroup resolves a group from its string form.
func ParseGroup(raw string) (Group, error) {
	group := Group(strings.ToLower(strings.TrimSpace(raw)))
	if !group.Valid() {
		return "", ErrUnknownGroup
	}
	return group, nil
}
