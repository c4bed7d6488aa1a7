package translation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rulekeep/rulekeep/internal/catalog"
)

func TestServiceSummarizeGroupKeepsKindOrder(t *testing.T) {
	store := catalog.NewMemoryStore()
	chapter := store.PutChapter(&catalog.Chapter{ID: uuid.New(), Position: 1, Title: "Shooting"})
	store.PutSection(&catalog.Section{
		ID:        uuid.New(),
		ChapterID: chapter.ID,
		Position:  1,
		Title:     "Line of Sight",
		Content:   "Check from the model's eye view.",
	})
	if _, err := store.UpsertTranslation(context.Background(), &catalog.Translation{
		EntityKind: catalog.KindChapter,
		EntityID:   chapter.ID,
		Locale:     "es",
		Title:      strPtr("Disparo"),
	}); err != nil {
		t.Fatalf("UpsertTranslation() error = %v", err)
	}

	service, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	summaries, err := service.SummarizeGroup(context.Background(), catalog.GroupBook, "es")
	if err != nil {
		t.Fatalf("SummarizeGroup() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("SummarizeGroup() = %d summaries, want 2", len(summaries))
	}
	if summaries[0].Kind != catalog.KindChapter || summaries[1].Kind != catalog.KindSection {
		t.Fatalf("summaries out of group order: %s, %s", summaries[0].Kind, summaries[1].Kind)
	}
	if summaries[0].CompletionRate != 100 || summaries[1].CompletionRate != 0 {
		t.Fatalf("completion rates = %d%%, %d%%", summaries[0].CompletionRate, summaries[1].CompletionRate)
	}
}

func TestServiceMissingWorkOrdersChaptersFirst(t *testing.T) {
	store := catalog.NewMemoryStore()
	chapter := store.PutChapter(&catalog.Chapter{ID: uuid.New(), Position: 1, Title: "Psychology"})
	section := store.PutSection(&catalog.Section{
		ID:        uuid.New(),
		ChapterID: chapter.ID,
		Position:  1,
		Title:     "Fear",
		Content:   "Fear tests happen at charge time.",
	})

	service, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	items, err := service.MissingWork(context.Background(), catalog.GroupBook, "es")
	if err != nil {
		t.Fatalf("MissingWork() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("MissingWork() = %d items, want 2", len(items))
	}
	if items[0].Kind != catalog.KindChapter || items[0].EntityID != chapter.ID {
		t.Fatalf("items[0] = %+v, want the chapter", items[0])
	}
	if items[1].Kind != catalog.KindSection || items[1].EntityID != section.ID {
		t.Fatalf("items[1] = %+v, want the section", items[1])
	}
	if len(items[1].SourceTexts) != 2 {
		t.Fatalf("section item carries %d source texts, want 2", len(items[1].SourceTexts))
	}
}

func TestServiceValidatesInput(t *testing.T) {
	if _, err := NewService(nil); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("NewService(nil) error = %v, want ErrStoreRequired", err)
	}

	service, err := NewService(catalog.NewMemoryStore())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if _, err := service.Summarize(context.Background(), catalog.KindChapter, ""); !errors.Is(err, ErrLocaleRequired) {
		t.Fatalf("Summarize() error = %v, want ErrLocaleRequired", err)
	}
	if _, err := service.SummarizeGroup(context.Background(), catalog.Group("fleet"), "es"); !errors.Is(err, ErrGroupRequired) {
		t.Fatalf("SummarizeGroup() error = %v, want ErrGroupRequired", err)
	}
	if _, err := service.MissingWork(context.Background(), catalog.GroupBook, ""); !errors.Is(err, ErrLocaleRequired) {
		t.Fatalf("MissingWork() error = %v, want ErrLocaleRequired", err)
	}
}
