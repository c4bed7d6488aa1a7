package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestMemoryStoreUpsertInsertsAndMerges(t *testing.T) {
	store := NewMemoryStore()
	section := store.PutSection(&Section{
		ID:       uuid.New(),
		Position: 1,
		Title:    "Setup",
		Content:  "Place terrain first.",
	})

	inserted, err := store.UpsertTranslation(context.Background(), &Translation{
		EntityKind: KindSection,
		EntityID:   section.ID,
		Locale:     "fr",
		Title:      strPtr("Mise en place"),
	})
	if err != nil {
		t.Fatalf("UpsertTranslation() error = %v", err)
	}
	if inserted.ID == uuid.Nil {
		t.Fatal("insert did not assign an id")
	}
	if inserted.CreatedAt.IsZero() || inserted.UpdatedAt.IsZero() {
		t.Fatal("insert did not stamp timestamps")
	}

	// A second write for the same key merges instead of replacing: the
	// stored title survives because the incoming record leaves it nil.
	merged, err := store.UpsertTranslation(context.Background(), &Translation{
		EntityKind: KindSection,
		EntityID:   section.ID,
		Locale:     "fr",
		Content:    strPtr("Placez le terrain en premier."),
	})
	if err != nil {
		t.Fatalf("UpsertTranslation() merge error = %v", err)
	}
	if merged.ID != inserted.ID {
		t.Fatalf("merge created a new row: %s != %s", merged.ID, inserted.ID)
	}
	if merged.Title == nil || *merged.Title != "Mise en place" {
		t.Fatalf("merge dropped stored title: %v", merged.Title)
	}
	if merged.Content == nil || *merged.Content != "Placez le terrain en premier." {
		t.Fatalf("merge did not apply content: %v", merged.Content)
	}
}

func TestMemoryStoreUpsertValidates(t *testing.T) {
	store := NewMemoryStore()

	cases := []*Translation{
		nil,
		{EntityID: uuid.New(), Locale: "es"},
		{EntityKind: KindChapter, Locale: "es"},
		{EntityKind: KindChapter, EntityID: uuid.New()},
	}
	for i, record := range cases {
		if _, err := store.UpsertTranslation(context.Background(), record); !errors.Is(err, ErrTranslationInvalid) {
			t.Fatalf("case %d: UpsertTranslation() error = %v, want ErrTranslationInvalid", i, err)
		}
	}
}

func TestMemoryStoreGetTranslationNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetTranslation(context.Background(), KindChapter, uuid.New(), "es")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("GetTranslation() error = %v, want NotFoundError", err)
	}
	if notFound.Resource != "translation" {
		t.Fatalf("NotFoundError resource = %q", notFound.Resource)
	}
}

func TestMemoryStoreReadsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	chapter := store.PutChapter(&Chapter{ID: uuid.New(), Position: 1, Title: "Assault"})
	if _, err := store.UpsertTranslation(context.Background(), &Translation{
		EntityKind: KindChapter,
		EntityID:   chapter.ID,
		Locale:     "es",
		Title:      strPtr("Asalto"),
	}); err != nil {
		t.Fatalf("UpsertTranslation() error = %v", err)
	}

	record, err := store.GetTranslation(context.Background(), KindChapter, chapter.ID, "es")
	if err != nil {
		t.Fatalf("GetTranslation() error = %v", err)
	}
	*record.Title = "mutated"

	again, err := store.GetTranslation(context.Background(), KindChapter, chapter.ID, "es")
	if err != nil {
		t.Fatalf("GetTranslation() error = %v", err)
	}
	if *again.Title != "Asalto" {
		t.Fatalf("caller mutation leaked into the store: %q", *again.Title)
	}

	chapters, err := store.ListChapters(context.Background())
	if err != nil {
		t.Fatalf("ListChapters() error = %v", err)
	}
	chapters[0].Title = "mutated"
	fresh, err := store.ListChapters(context.Background())
	if err != nil {
		t.Fatalf("ListChapters() error = %v", err)
	}
	if fresh[0].Title != "Assault" {
		t.Fatalf("entity mutation leaked into the store: %q", fresh[0].Title)
	}
}

func TestMemoryStoreOrdering(t *testing.T) {
	store := NewMemoryStore()
	first := store.PutChapter(&Chapter{ID: uuid.New(), Position: 1, Title: "First"})
	second := store.PutChapter(&Chapter{ID: uuid.New(), Position: 2, Title: "Second"})

	// Sections across both chapters interleave by chapter then position.
	store.PutSection(&Section{ID: uuid.New(), ChapterID: second.ID, Position: 1, Title: "2.1", Content: "x"})
	store.PutSection(&Section{ID: uuid.New(), ChapterID: first.ID, Position: 2, Title: "1.2", Content: "x"})
	store.PutSection(&Section{ID: uuid.New(), ChapterID: first.ID, Position: 1, Title: "1.1", Content: "x"})

	store.PutKeyword(&Keyword{ID: uuid.New(), Name: "Stealth", Description: "x"})
	store.PutKeyword(&Keyword{ID: uuid.New(), Name: "Fearless", Description: "x"})

	sections, err := store.ListSections(context.Background())
	if err != nil {
		t.Fatalf("ListSections() error = %v", err)
	}
	wantSections := []string{"1.1", "1.2", "2.1"}
	for i, want := range wantSections {
		if sections[i].Title != want {
			t.Fatalf("sections[%d] = %q, want %q", i, sections[i].Title, want)
		}
	}

	keywords, err := store.ListKeywords(context.Background())
	if err != nil {
		t.Fatalf("ListKeywords() error = %v", err)
	}
	if keywords[0].Name != "Fearless" || keywords[1].Name != "Stealth" {
		t.Fatalf("keywords out of order: %q, %q", keywords[0].Name, keywords[1].Name)
	}
}

func TestMemoryStoreListEntities(t *testing.T) {
	store := NewMemoryStore()
	store.PutCharacteristic(&Characteristic{ID: uuid.New(), Position: 2, Name: "Toughness"})
	store.PutCharacteristic(&Characteristic{ID: uuid.New(), Position: 1, Name: "Movement"})

	entities, err := store.ListEntities(context.Background(), KindCharacteristic)
	if err != nil {
		t.Fatalf("ListEntities() error = %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("ListEntities() = %d entities, want 2", len(entities))
	}
	if name, _ := entities[0].SourceText(FieldName); name != "Movement" {
		t.Fatalf("entities[0] name = %q, want Movement", name)
	}

	if _, err := store.ListEntities(context.Background(), Kind("bogus")); err == nil {
		t.Fatal("ListEntities() accepted an unknown kind")
	}
}

func TestMemoryLocaleRepository(t *testing.T) {
	repo := NewMemoryLocaleRepository()
	if _, err := repo.Create(context.Background(), &Locale{Code: "EN", Display: "English", IsDefault: true}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Create(context.Background(), &Locale{Code: "es", Display: "Spanish"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Codes are normalized to lowercase on write and lookup.
	locale, err := repo.GetByCode(context.Background(), "en")
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}
	if locale.Code != "en" || !locale.IsDefault {
		t.Fatalf("GetByCode() = %+v", locale)
	}

	locales, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(locales) != 2 || locales[0].Code != "en" || locales[1].Code != "es" {
		t.Fatalf("List() = %+v", locales)
	}
}
