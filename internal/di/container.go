package di

import (
	"context"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/rulekeep/rulekeep/internal/catalog"
	"github.com/rulekeep/rulekeep/internal/logging"
	"github.com/rulekeep/rulekeep/internal/logging/gologger"
	"github.com/rulekeep/rulekeep/internal/runtimeconfig"
	"github.com/rulekeep/rulekeep/internal/translate"
	"github.com/rulekeep/rulekeep/internal/translation"
	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

// localeWriter is the seeding surface shared by the memory and bun locale
// repositories.
type localeWriter interface {
	catalog.LocaleRepository
	Create(ctx context.Context, record *catalog.Locale) (*catalog.Locale, error)
}

// Container wires module dependencies from configuration: storage, the
// provider adapter, the progress broadcaster, and the batch runner.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	store      catalog.Store
	localeRepo localeWriter

	translator  interfaces.Translator
	audit       translation.AuditRecorder
	broadcaster *translation.Broadcaster

	completeness *translation.Service
	runner       *translation.Runner
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches storage to the SQL-backed catalog store.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache wiring.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithStore overrides the catalog store.
func WithStore(store catalog.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithTranslator overrides the configured provider adapter.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) {
		if translator != nil {
			c.translator = translator
		}
	}
}

// WithLoggerProvider injects the host's logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithAuditRecorder overrides the run audit recorder.
func WithAuditRecorder(recorder translation.AuditRecorder) Option {
	return func(c *Container) {
		c.audit = recorder
	}
}

// WithBroadcaster overrides the progress broadcaster.
func WithBroadcaster(broadcaster *translation.Broadcaster) Option {
	return func(c *Container) {
		if broadcaster != nil {
			c.broadcaster = broadcaster
		}
	}
}

// NewContainer wires module dependencies from the validated configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memoryStore := catalog.NewMemoryStore()
	memoryLocales := catalog.NewMemoryLocaleRepository()

	c := &Container{
		Config:     cfg,
		cacheTTL:   cacheTTL,
		store:      memoryStore,
		localeRepo: memoryLocales,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureStorage()
	c.seedLocales()
	if err := c.configureTranslator(); err != nil {
		return nil, err
	}

	if c.broadcaster == nil {
		c.broadcaster = translation.NewBroadcaster()
	}
	if c.audit == nil && cfg.Features.Audit {
		c.audit = translation.NewInMemoryAuditRecorder()
	}

	completeness, err := translation.NewService(c.store,
		translation.WithServiceLogger(logging.TranslationLogger(c.loggerProvider)),
	)
	if err != nil {
		return nil, err
	}
	c.completeness = completeness

	runner, err := translation.NewRunner(c.store, c.translator,
		translation.WithProgress(c.broadcaster),
		translation.WithLogger(logging.TranslationLogger(c.loggerProvider)),
		translation.WithAuditRecorder(c.audit),
		translation.WithBatchSize(cfg.Translation.BatchSize),
		translation.WithDelays(delayTable(cfg.Translation.Delays)),
	)
	if err != nil {
		return nil, err
	}
	c.runner = runner

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() {
	if c.bunDB == nil {
		return
	}
	c.store = catalog.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.localeRepo = catalog.NewBunLocaleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

// seedLocales records the configured locale set so completeness queries have
// a stable universe of target languages. Codes already present are left
// untouched, which keeps seeding idempotent against a durable store.
func (c *Container) seedLocales() {
	if c.localeRepo == nil {
		return
	}

	ctx := context.Background()
	locales := c.Config.I18N.Locales
	if len(locales) == 0 {
		locales = []string{c.Config.DefaultLocale}
	}

	seen := map[string]struct{}{}
	for _, code := range locales {
		normalized := strings.TrimSpace(code)
		if normalized == "" {
			continue
		}
		lower := strings.ToLower(normalized)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}

		if _, err := c.localeRepo.GetByCode(ctx, lower); err == nil {
			continue
		}
		_, _ = c.localeRepo.Create(ctx, &catalog.Locale{
			ID:        uuid.New(),
			Code:      lower,
			Display:   normalized,
			IsDefault: strings.EqualFold(normalized, c.Config.DefaultLocale),
		})
	}
}

func (c *Container) configureTranslator() error {
	if c.translator != nil {
		return nil
	}
	switch strings.TrimSpace(c.Config.Translation.Provider) {
	case runtimeconfig.ProviderLLM:
		client, err := translate.NewLLMClient(translate.LLMConfig{
			Endpoint: c.Config.Translation.LLM.Endpoint,
			APIKey:   c.Config.Translation.LLM.APIKey,
			Model:    c.Config.Translation.LLM.Model,
			Timeout:  c.Config.Translation.LLM.Timeout,
		}, translate.WithClientLogger(logging.TranslateClientLogger(c.loggerProvider)))
		if err != nil {
			return err
		}
		c.translator = client
	default:
		c.translator = translate.NewStaticTranslator()
	}
	return nil
}

func delayTable(delays runtimeconfig.DelayConfig) map[catalog.Kind]time.Duration {
	return map[catalog.Kind]time.Duration{
		catalog.KindChapter:        delays.Chapters,
		catalog.KindSection:        delays.Sections,
		catalog.KindKeyword:        delays.Keywords,
		catalog.KindSpecialRule:    delays.Rules,
		catalog.KindCharacteristic: delays.Characteristics,
	}
}

// Store returns the catalog store.
func (c *Container) Store() catalog.Store {
	return c.store
}

// LocaleRepository returns the locale repository.
func (c *Container) LocaleRepository() catalog.LocaleRepository {
	return c.localeRepo
}

// Translator returns the active provider adapter.
func (c *Container) Translator() interfaces.Translator {
	return c.translator
}

// Runner returns the batch translation runner.
func (c *Container) Runner() *translation.Runner {
	return c.runner
}

// CompletenessService returns the completeness query service.
func (c *Container) CompletenessService() *translation.Service {
	return c.completeness
}

// Progress returns the run progress broadcaster.
func (c *Container) Progress() *translation.Broadcaster {
	return c.broadcaster
}

// AuditRecorder returns the run audit recorder, which may be nil when the
// audit feature is disabled.
func (c *Container) AuditRecorder() translation.AuditRecorder {
	return c.audit
}

// LoggerProvider returns the active logger provider, which may be nil when
// logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}
