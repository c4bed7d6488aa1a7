package rulekeep_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	rulekeep "github.com/rulekeep/rulekeep"
	rkcatalog "github.com/rulekeep/rulekeep/catalog"
	"github.com/rulekeep/rulekeep/internal/di"
	"github.com/rulekeep/rulekeep/pkg/testsupport"
)

func TestModuleWithBunStorage(t *testing.T) {
	db, err := testsupport.NewBunDB()
	if err != nil {
		t.Fatalf("NewBunDB() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := testsupport.ApplyMigrations(ctx, db, rulekeep.GetMigrationsFS()); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}

	keyword := &rkcatalog.Keyword{
		ID:          uuid.New(),
		Name:        "Fearless",
		Description: "Never takes morale tests.",
	}
	if _, err := db.NewInsert().Model(keyword).Exec(ctx); err != nil {
		t.Fatalf("inserting keyword: %v", err)
	}
	rule := &rkcatalog.SpecialRule{
		ID:          uuid.New(),
		Name:        "Infiltrate",
		Description: "Deploys after both armies.",
	}
	if _, err := db.NewInsert().Model(rule).Exec(ctx); err != nil {
		t.Fatalf("inserting special rule: %v", err)
	}

	cfg := rulekeep.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.I18N.Locales = []string{"en", "fr"}

	module, err := rulekeep.New(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	summaries, err := module.Summaries(ctx, rulekeep.GroupKeywords, "fr")
	if err != nil {
		t.Fatalf("Summaries() error = %v", err)
	}
	if len(summaries) != 1 || summaries[0].Total != 1 || summaries[0].Complete != 0 {
		t.Fatalf("Summaries() = %+v", summaries)
	}

	summary, err := module.RunTranslation(ctx, rulekeep.GroupKeywords, "fr")
	if err != nil {
		t.Fatalf("RunTranslation() error = %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("RunTranslation() summary = %+v", summary)
	}

	record, err := module.Catalog().GetTranslation(ctx, rkcatalog.KindKeyword, keyword.ID, "fr")
	if err != nil {
		t.Fatalf("GetTranslation() error = %v", err)
	}
	if record.Name == nil || *record.Name != "[fr] Fearless" {
		t.Fatalf("keyword name translation = %v", record.Name)
	}
	if record.Description == nil || *record.Description != "[fr] Never takes morale tests." {
		t.Fatalf("keyword description translation = %v", record.Description)
	}

	// Upserting through the store merges onto the existing row instead of
	// duplicating it.
	if _, err := module.Catalog().UpsertTranslation(ctx, &rkcatalog.Translation{
		EntityKind: rkcatalog.KindKeyword,
		EntityID:   keyword.ID,
		Locale:     "fr",
		Name:       strPtr("Sans peur"),
	}); err != nil {
		t.Fatalf("UpsertTranslation() error = %v", err)
	}
	merged, err := module.Catalog().GetTranslation(ctx, rkcatalog.KindKeyword, keyword.ID, "fr")
	if err != nil {
		t.Fatalf("GetTranslation() after merge error = %v", err)
	}
	if *merged.Name != "Sans peur" {
		t.Fatalf("merged name = %q", *merged.Name)
	}
	if merged.Description == nil || *merged.Description != "[fr] Never takes morale tests." {
		t.Fatalf("merge dropped description: %v", merged.Description)
	}

	// The rules group reads from the same database.
	ruleSummary, err := module.RunTranslation(ctx, rulekeep.GroupRules, "fr")
	if err != nil {
		t.Fatalf("RunTranslation(rules) error = %v", err)
	}
	if ruleSummary.Succeeded != 1 {
		t.Fatalf("RunTranslation(rules) summary = %+v", ruleSummary)
	}

	locales, err := module.Locales().List(ctx)
	if err != nil {
		t.Fatalf("Locales().List() error = %v", err)
	}
	if len(locales) != 2 {
		t.Fatalf("seeded %d locales, want 2", len(locales))
	}
}

func strPtr(s string) *string { return &s }
