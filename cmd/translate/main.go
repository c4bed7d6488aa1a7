package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rulekeep/rulekeep"
	"github.com/rulekeep/rulekeep/internal/di"
	"github.com/rulekeep/rulekeep/pkg/testsupport"
)

func main() {
	if err := runTranslate(os.Args[1:]); err != nil {
		log.Fatalf("translate: %v", err)
	}
}

func runTranslate(args []string) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	group := fs.String("group", "book", "Entity group to translate: book, keywords, rules, characteristics")
	locale := fs.String("locale", "", "Target locale code (e.g. es, fr)")
	locales := fs.String("locales", "en", "Comma separated list of catalog locales")
	defaultLocale := fs.String("default-locale", "en", "Source language of the catalog")
	provider := fs.String("provider", "static", "Translation provider: static or llm")
	endpoint := fs.String("llm-endpoint", "", "Chat completions endpoint for the llm provider")
	apiKey := fs.String("llm-api-key", os.Getenv("RULEKEEP_LLM_API_KEY"), "API key for the llm provider")
	model := fs.String("llm-model", "", "Model name for the llm provider")
	dbPath := fs.String("db", "", "SQLite database path (in-memory when empty)")
	batchSize := fs.Int("batch-size", 8, "Work items per pacing batch")
	logLevel := fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	showMissing := fs.Bool("missing", false, "List pending work instead of running a translation")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*locale) == "" {
		return fmt.Errorf("locale is required")
	}

	cfg := rulekeep.DefaultConfig()
	cfg.DefaultLocale = *defaultLocale
	cfg.I18N.Locales = splitLocales(*locales, *locale)
	cfg.Translation.Provider = *provider
	cfg.Translation.BatchSize = *batchSize
	cfg.Translation.LLM.Endpoint = *endpoint
	cfg.Translation.LLM.APIKey = *apiKey
	cfg.Translation.LLM.Model = *model
	cfg.Features.Logger = true
	cfg.Features.Audit = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = "console"

	opts := []di.Option{}
	if strings.TrimSpace(*dbPath) != "" {
		cfg.Storage.Provider = "bun"
		db, err := testsupport.NewBunDBAt(*dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := testsupport.ApplyMigrations(context.Background(), db, rulekeep.GetMigrationsFS()); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		opts = append(opts, di.WithBunDB(db))
	}

	module, err := rulekeep.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	parsedGroup, err := parseGroup(*group)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if *showMissing {
		items, err := module.MissingWork(ctx, parsedGroup, *locale)
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Printf("%s %s needs %d field(s)\n", item.Kind, item.EntityID, len(item.Fields))
		}
		fmt.Printf("%d work item(s) pending\n", len(items))
		return nil
	}

	unsubscribe := module.Progress().Subscribe(func(event rulekeep.ProgressEvent) {
		fmt.Printf("\r%d/%d", event.Completed, event.Total)
	})
	defer unsubscribe()

	started := time.Now()
	summary, err := module.RunTranslation(ctx, parsedGroup, *locale)
	if err != nil {
		return err
	}

	fmt.Printf("\nattempted=%d succeeded=%d failed=%d in %s\n",
		summary.Attempted, summary.Succeeded, summary.Failed, time.Since(started).Round(time.Millisecond))
	for _, kindSummary := range summary.Summaries {
		fmt.Printf("%s: %d/%d complete (%d%%)\n",
			kindSummary.Kind, kindSummary.Complete, kindSummary.Total, kindSummary.CompletionRate)
	}
	return nil
}

func parseGroup(raw string) (rulekeep.Group, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "book":
		return rulekeep.GroupBook, nil
	case "keywords":
		return rulekeep.GroupKeywords, nil
	case "rules":
		return rulekeep.GroupRules, nil
	case "characteristics":
		return rulekeep.GroupCharacteristics, nil
	default:
		return "", fmt.Errorf("unknown group %q", raw)
	}
}

func splitLocales(raw, target string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, code := range append(strings.Split(raw, ","), target) {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
