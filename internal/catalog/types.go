package catalog

import rkcatalog "github.com/rulekeep/rulekeep/catalog"

type (
	Locale         = rkcatalog.Locale
	Chapter        = rkcatalog.Chapter
	Section        = rkcatalog.Section
	Keyword        = rkcatalog.Keyword
	SpecialRule    = rkcatalog.SpecialRule
	Characteristic = rkcatalog.Characteristic
	Translation    = rkcatalog.Translation
	Entity         = rkcatalog.Entity
	Kind           = rkcatalog.Kind
	Field          = rkcatalog.Field
	Group          = rkcatalog.Group
	NotFoundError  = rkcatalog.NotFoundError
)

const (
	KindChapter        = rkcatalog.KindChapter
	KindSection        = rkcatalog.KindSection
	KindKeyword        = rkcatalog.KindKeyword
	KindSpecialRule    = rkcatalog.KindSpecialRule
	KindCharacteristic = rkcatalog.KindCharacteristic
)

const (
	FieldTitle       = rkcatalog.FieldTitle
	FieldContent     = rkcatalog.FieldContent
	FieldName        = rkcatalog.FieldName
	FieldDescription = rkcatalog.FieldDescription
)

const (
	GroupBook            = rkcatalog.GroupBook
	GroupKeywords        = rkcatalog.GroupKeywords
	GroupRules           = rkcatalog.GroupRules
	GroupCharacteristics = rkcatalog.GroupCharacteristics
)

// ParseKind resolves an entity kind from its string form.
func ParseKind(raw string) (Kind, error) {
	return rkcatalog.ParseKind(raw)
}

// ParseGroup resolves a run group from its string form.
func ParseGroup(raw string) (Group, error) {
	return rkcatalog.ParseGroup(raw)
}
