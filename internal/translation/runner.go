package translation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rulekeep/rulekeep/internal/catalog"
	"github.com/rulekeep/rulekeep/internal/logging"
	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

// DefaultBatchSize bounds how many work items share one logging batch. The
// provider is still called once per entity; the batch only shapes pacing and
// diagnostics.
const DefaultBatchSize = 8

// DefaultDelays carries the per-kind inter-call backoff applied between
// provider calls. The delay is unconditional: it runs whether the previous
// call succeeded or failed.
func DefaultDelays() map[catalog.Kind]time.Duration {
	return map[catalog.Kind]time.Duration{
		catalog.KindChapter:        500 * time.Millisecond,
		catalog.KindSection:        time.Second,
		catalog.KindKeyword:        750 * time.Millisecond,
		catalog.KindSpecialRule:    750 * time.Millisecond,
		catalog.KindCharacteristic: 750 * time.Millisecond,
	}
}

// RunSummary reports the terminal outcome of one run: counts, never
// per-item detail. Summaries holds the post-run refetched completeness per
// kind in group order.
type RunSummary struct {
	Group     catalog.Group `json:"group"`
	Locale    string        `json:"locale"`
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Summaries []Summary     `json:"summaries"`
}

type runKey struct {
	group  catalog.Group
	locale string
}

// Runner executes batch translation runs: it selects missing work, calls
// the provider once per entity, writes each success through the catalog
// store, and publishes a progress event per resolved item. One run at a
// time may be active per (group, locale) pair; runs for disjoint pairs may
// proceed concurrently.
type Runner struct {
	store      catalog.Store
	translator interfaces.Translator
	progress   *Broadcaster
	logger     interfaces.Logger
	audit      AuditRecorder
	batchSize  int
	delays     map[catalog.Kind]time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	now        func() time.Time

	mu     sync.Mutex
	active map[runKey]struct{}
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithProgress sets the broadcaster the runner publishes to.
func WithProgress(broadcaster *Broadcaster) RunnerOption {
	return func(r *Runner) {
		if broadcaster != nil {
			r.progress = broadcaster
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger interfaces.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAuditRecorder records a terminal audit event per run.
func WithAuditRecorder(recorder AuditRecorder) RunnerOption {
	return func(r *Runner) {
		r.audit = recorder
	}
}

// WithBatchSize overrides the pacing batch size.
func WithBatchSize(size int) RunnerOption {
	return func(r *Runner) {
		if size > 0 {
			r.batchSize = size
		}
	}
}

// WithDelay overrides the inter-call delay for one entity kind.
func WithDelay(kind catalog.Kind, delay time.Duration) RunnerOption {
	return func(r *Runner) {
		if delay >= 0 {
			r.delays[kind] = delay
		}
	}
}

// WithDelays replaces the whole per-kind delay table.
func WithDelays(delays map[catalog.Kind]time.Duration) RunnerOption {
	return func(r *Runner) {
		if delays == nil {
			return
		}
		for kind, delay := range delays {
			if delay >= 0 {
				r.delays[kind] = delay
			}
		}
	}
}

// WithSleeper replaces the delay primitive. Tests inject a no-op sleeper so
// runs finish instantly.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) RunnerOption {
	return func(r *Runner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// WithClock replaces the time source.
func WithClock(clock func() time.Time) RunnerOption {
	return func(r *Runner) {
		if clock != nil {
			r.now = clock
		}
	}
}

// NewRunner constructs a batch translation runner.
func NewRunner(store catalog.Store, translator interfaces.Translator, opts ...RunnerOption) (*Runner, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if translator == nil {
		return nil, ErrTranslatorRequired
	}
	runner := &Runner{
		store:      store,
		translator: translator,
		progress:   NewBroadcaster(),
		logger:     logging.NoOp(),
		batchSize:  DefaultBatchSize,
		delays:     DefaultDelays(),
		sleep:      sleepContext,
		now:        time.Now,
		active:     make(map[runKey]struct{}),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Progress returns the broadcaster observers subscribe to.
func (r *Runner) Progress() *Broadcaster {
	return r.progress
}

// Run executes one batch translation run for a group and target locale and
// returns its terminal summary. A second trigger for the same pair while a
// run is in flight fails with ErrRunActive. Context cancellation stops the
// run before the next provider call; writes already applied stand.
func (r *Runner) Run(ctx context.Context, group catalog.Group, locale string) (*RunSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !group.Valid() {
		return nil, ErrGroupRequired
	}
	if locale == "" {
		return nil, ErrLocaleRequired
	}

	if err := r.acquire(group, locale); err != nil {
		return nil, err
	}
	defer r.release(group, locale)

	logger := logging.WithFields(r.logger, map[string]any{
		"group":  string(group),
		"locale": locale,
	})

	startedAt := r.now()
	summary := &RunSummary{Group: group, Locale: locale, StartedAt: startedAt}

	items, skipped, err := r.collectWork(ctx, group, locale, logger)
	if err != nil {
		return nil, err
	}
	summary.Skipped = len(skipped)

	total := len(items)
	if total == 0 {
		logger.Info("nothing to translate")
		return r.finish(ctx, summary, logger)
	}

	logger.Info("translation run starting", "items", total)
	r.progress.Publish(ProgressEvent{Group: group, Locale: locale, Completed: 0, Total: total})

	completed := 0
	calls := 0
	for _, batch := range partition(items, r.batchSize) {
		for _, item := range batch {
			if calls > 0 {
				if err := r.sleep(ctx, r.delayFor(item.Kind)); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrRunAborted, err)
				}
			}
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrRunAborted, err)
			}
			calls++

			summary.Attempted++
			if err := r.translateItem(ctx, item, locale); err != nil {
				summary.Failed++
				logger.Warn("work item failed",
					"kind", string(item.Kind),
					"entity_id", item.EntityID.String(),
					"error", err,
				)
			} else {
				summary.Succeeded++
			}

			completed++
			r.progress.Publish(ProgressEvent{Group: group, Locale: locale, Completed: completed, Total: total})
		}
	}

	logger.Info("translation run finished",
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return r.finish(ctx, summary, logger)
}

func (r *Runner) acquire(group catalog.Group, locale string) error {
	key := runKey{group: group, locale: locale}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.active[key]; busy {
		return ErrRunActive
	}
	r.active[key] = struct{}{}
	return nil
}

func (r *Runner) release(group catalog.Group, locale string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, runKey{group: group, locale: locale})
}

// collectWork builds the ordered work list across the group's kinds. A read
// failure here aborts the run as a whole; nothing has been written yet.
func (r *Runner) collectWork(ctx context.Context, group catalog.Group, locale string, logger interfaces.Logger) ([]WorkItem, []*SelectionError, error) {
	var items []WorkItem
	var skipped []*SelectionError
	for _, kind := range group.Kinds() {
		entities, err := r.store.ListEntities(ctx, kind)
		if err != nil {
			return nil, nil, fmt.Errorf("translation: listing %s entities: %w", kind, err)
		}
		translations, err := r.store.ListTranslations(ctx, kind, locale)
		if err != nil {
			return nil, nil, fmt.Errorf("translation: listing %s translations: %w", kind, err)
		}
		selected, malformed := SelectWork(entities, translations)
		for _, skip := range malformed {
			logger.Warn("skipping entity with blank source text",
				"kind", string(skip.Kind),
				"entity_id", skip.EntityID.String(),
				"field", string(skip.Field),
			)
		}
		items = append(items, selected...)
		skipped = append(skipped, malformed...)
	}
	return items, skipped, nil
}

// translateItem performs one provider call and one store write for one
// entity. All of the entity's missing fields travel together, so either
// every field lands or none does.
func (r *Runner) translateItem(ctx context.Context, item WorkItem, locale string) error {
	translated, err := r.translator.TranslateBatch(ctx, item.SourceTexts, locale)
	if err != nil {
		return &ProviderError{Kind: item.Kind, EntityID: item.EntityID, Err: err}
	}
	if len(translated) != len(item.SourceTexts) {
		return &ProviderError{
			Kind:     item.Kind,
			EntityID: item.EntityID,
			Err:      fmt.Errorf("expected %d translations, got %d", len(item.SourceTexts), len(translated)),
		}
	}

	record := &catalog.Translation{
		EntityKind: item.Kind,
		EntityID:   item.EntityID,
		Locale:     locale,
	}
	for i, field := range item.Fields {
		record.Set(field, translated[i])
	}
	if _, err := r.store.UpsertTranslation(ctx, record); err != nil {
		return &PersistenceError{Kind: item.Kind, EntityID: item.EntityID, Err: err}
	}
	return nil
}

// finish refetches completeness from the store so the summary reflects the
// durable result rather than in-run bookkeeping, then records the audit
// event.
func (r *Runner) finish(ctx context.Context, summary *RunSummary, logger interfaces.Logger) (*RunSummary, error) {
	summary.Duration = r.now().Sub(summary.StartedAt)

	for _, kind := range summary.Group.Kinds() {
		entities, err := r.store.ListEntities(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("translation: refetching %s entities: %w", kind, err)
		}
		translations, err := r.store.ListTranslations(ctx, kind, summary.Locale)
		if err != nil {
			return nil, fmt.Errorf("translation: refetching %s translations: %w", kind, err)
		}
		summary.Summaries = append(summary.Summaries, Summarize(kind, summary.Locale, entities, translations))
	}

	if r.audit != nil {
		event := AuditEvent{
			Group:      string(summary.Group),
			Locale:     summary.Locale,
			Attempted:  summary.Attempted,
			Succeeded:  summary.Succeeded,
			Failed:     summary.Failed,
			OccurredAt: r.now(),
		}
		if err := r.audit.Record(ctx, event); err != nil {
			logger.Warn("recording run audit event failed", "error", err)
		}
	}
	return summary, nil
}

func (r *Runner) delayFor(kind catalog.Kind) time.Duration {
	return r.delays[kind]
}

func partition(items []WorkItem, size int) [][]WorkItem {
	if size <= 0 {
		size = DefaultBatchSize
	}
	batches := make([][]WorkItem, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
