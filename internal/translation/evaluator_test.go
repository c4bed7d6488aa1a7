package translation

import (
	"testing"

	"github.com/google/uuid"

	"github.com/rulekeep/rulekeep/internal/catalog"
)

func strPtr(value string) *string {
	return &value
}

func TestIsCompleteRequiresEveryRequiredField(t *testing.T) {
	record := &catalog.Translation{
		EntityKind: catalog.KindSection,
		EntityID:   uuid.New(),
		Locale:     "es",
		Title:      strPtr("Reglas de combate"),
	}

	if IsComplete(catalog.KindSection, record) {
		t.Fatal("IsComplete() = true for section missing content")
	}

	record.Content = strPtr("El combate se resuelve por turnos.")
	if !IsComplete(catalog.KindSection, record) {
		t.Fatal("IsComplete() = false for section with title and content")
	}
}

func TestIsCompleteTreatsBlankAsMissing(t *testing.T) {
	record := &catalog.Translation{
		EntityKind: catalog.KindChapter,
		EntityID:   uuid.New(),
		Locale:     "es",
		Title:      strPtr("   "),
	}

	if IsComplete(catalog.KindChapter, record) {
		t.Fatal("IsComplete() = true for whitespace-only title")
	}
	if IsComplete(catalog.KindChapter, nil) {
		t.Fatal("IsComplete() = true for absent translation")
	}
}

func TestSummarizeCountsAndRate(t *testing.T) {
	chapters := []catalog.Entity{
		&catalog.Chapter{ID: uuid.New(), Title: "Introduction"},
		&catalog.Chapter{ID: uuid.New(), Title: "Combat Rules"},
		&catalog.Chapter{ID: uuid.New(), Title: "Morale"},
	}
	translations := map[uuid.UUID]*catalog.Translation{
		chapters[0].EntityID(): {
			EntityKind: catalog.KindChapter,
			EntityID:   chapters[0].EntityID(),
			Locale:     "es",
			Title:      strPtr("Introducción"),
		},
	}

	summary := Summarize(catalog.KindChapter, "es", chapters, translations)
	if summary.Total != 3 {
		t.Fatalf("Summarize() total = %d, want 3", summary.Total)
	}
	if summary.Complete != 1 {
		t.Fatalf("Summarize() complete = %d, want 1", summary.Complete)
	}
	if summary.CompletionRate != 33 {
		t.Fatalf("Summarize() rate = %d, want 33", summary.CompletionRate)
	}
}

func TestSummarizeEmptyCollection(t *testing.T) {
	summary := Summarize(catalog.KindKeyword, "es", nil, nil)
	if summary.Total != 0 || summary.Complete != 0 {
		t.Fatalf("Summarize() = %+v, want zero counts", summary)
	}
	if summary.CompletionRate != 0 {
		t.Fatalf("Summarize() rate = %d, want 0 for empty collection", summary.CompletionRate)
	}
}

func TestCompletionRateRounds(t *testing.T) {
	cases := []struct {
		complete int
		total    int
		want     int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
	}
	for _, tc := range cases {
		if got := completionRate(tc.complete, tc.total); got != tc.want {
			t.Fatalf("completionRate(%d, %d) = %d, want %d", tc.complete, tc.total, got, tc.want)
		}
	}
}
