package rulekeep

import (
	"context"

	"github.com/rulekeep/rulekeep/internal/catalog"
	"github.com/rulekeep/rulekeep/internal/di"
	"github.com/rulekeep/rulekeep/internal/translation"
	rkcatalog "github.com/rulekeep/rulekeep/catalog"
)

// CatalogStore exports the persistence gateway contract for consumers of
// the rulekeep package.
type CatalogStore = catalog.Store

// LocaleRepository exports the locale registry contract.
type LocaleRepository = catalog.LocaleRepository

// CompletenessService exports the completeness query service.
type CompletenessService = translation.Service

// Runner exports the batch translation runner.
type Runner = translation.Runner

// RunSummary exports the terminal run outcome record.
type RunSummary = translation.RunSummary

// Summary exports the per-kind completeness rollup.
type Summary = translation.Summary

// WorkItem exports the selector's unit of pending translation work.
type WorkItem = translation.WorkItem

// ProgressEvent exports the per-item progress record.
type ProgressEvent = translation.ProgressEvent

// ProgressListener exports the progress callback shape.
type ProgressListener = translation.ProgressListener

// Broadcaster exports the progress fan-out object.
type Broadcaster = translation.Broadcaster

// AuditRecorder exports the run audit contract.
type AuditRecorder = translation.AuditRecorder

// AuditEvent exports the recorded run outcome shape.
type AuditEvent = translation.AuditEvent

// Group exports the run group identifier.
type Group = rkcatalog.Group

// Kind exports the entity kind identifier.
type Kind = rkcatalog.Kind

// Run groups accepted by RunTranslation.
const (
	GroupBook            = rkcatalog.GroupBook
	GroupKeywords        = rkcatalog.GroupKeywords
	GroupRules           = rkcatalog.GroupRules
	GroupCharacteristics = rkcatalog.GroupCharacteristics
)

// Pipeline errors surfaced to hosts.
var (
	ErrRunActive  = translation.ErrRunActive
	ErrRunAborted = translation.ErrRunAborted
)

// Module is the top level runtime façade: a catalog of translatable
// entities plus the batch translation pipeline that fills their gaps.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Catalog returns the persistence gateway.
func (m *Module) Catalog() CatalogStore {
	return m.container.Store()
}

// Locales returns the locale registry.
func (m *Module) Locales() LocaleRepository {
	return m.container.LocaleRepository()
}

// Completeness returns the completeness query service.
func (m *Module) Completeness() *CompletenessService {
	return m.container.CompletenessService()
}

// Translations returns the batch translation runner.
func (m *Module) Translations() *Runner {
	return m.container.Runner()
}

// Progress returns the broadcaster run observers subscribe to.
func (m *Module) Progress() *Broadcaster {
	return m.container.Progress()
}

// Audit returns the run audit recorder, or nil when auditing is disabled.
func (m *Module) Audit() AuditRecorder {
	return m.container.AuditRecorder()
}

// RunTranslation triggers one batch translation run and returns its
// terminal summary.
func (m *Module) RunTranslation(ctx context.Context, group Group, locale string) (*RunSummary, error) {
	return m.container.Runner().Run(ctx, group, locale)
}

// Summaries reports completeness for every kind in a group.
func (m *Module) Summaries(ctx context.Context, group Group, locale string) ([]Summary, error) {
	return m.container.CompletenessService().SummarizeGroup(ctx, group, locale)
}

// MissingWork lists the work a run for this group and locale would process.
func (m *Module) MissingWork(ctx context.Context, group Group, locale string) ([]WorkItem, error) {
	return m.container.CompletenessService().MissingWork(ctx, group, locale)
}
