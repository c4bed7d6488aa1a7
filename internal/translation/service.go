package translation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rulekeep/rulekeep/internal/catalog"
	"github.com/rulekeep/rulekeep/internal/logging"
	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

// Service answers completeness questions against the catalog store. It reads
// only; every durable write belongs to the Runner.
type Service struct {
	store  catalog.Store
	logger interfaces.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger.
func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a completeness query service.
func NewService(store catalog.Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	svc := &Service{
		store:  store,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Summarize reports completeness counts for one kind and locale.
func (s *Service) Summarize(ctx context.Context, kind catalog.Kind, locale string) (Summary, error) {
	if locale == "" {
		return Summary{}, ErrLocaleRequired
	}
	entities, translations, err := s.load(ctx, kind, locale)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(kind, locale, entities, translations), nil
}

// SummarizeGroup reports completeness for every kind in a run group, in the
// group's processing order.
func (s *Service) SummarizeGroup(ctx context.Context, group catalog.Group, locale string) ([]Summary, error) {
	if !group.Valid() {
		return nil, ErrGroupRequired
	}
	if locale == "" {
		return nil, ErrLocaleRequired
	}
	summaries := make([]Summary, 0, len(group.Kinds()))
	for _, kind := range group.Kinds() {
		summary, err := s.Summarize(ctx, kind, locale)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// MissingWork returns the ordered work list a run for this group and locale
// would process. Kinds keep the group's ordering, so book runs list chapter
// items before section items.
func (s *Service) MissingWork(ctx context.Context, group catalog.Group, locale string) ([]WorkItem, error) {
	if !group.Valid() {
		return nil, ErrGroupRequired
	}
	if locale == "" {
		return nil, ErrLocaleRequired
	}

	var items []WorkItem
	for _, kind := range group.Kinds() {
		entities, translations, err := s.load(ctx, kind, locale)
		if err != nil {
			return nil, err
		}
		selected, skipped := SelectWork(entities, translations)
		for _, skip := range skipped {
			s.logger.Warn("skipping entity with blank source text",
				"kind", string(skip.Kind),
				"entity_id", skip.EntityID.String(),
				"field", string(skip.Field),
			)
		}
		items = append(items, selected...)
	}
	return items, nil
}

func (s *Service) load(ctx context.Context, kind catalog.Kind, locale string) ([]catalog.Entity, map[uuid.UUID]*catalog.Translation, error) {
	entities, err := s.store.ListEntities(ctx, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("translation: listing %s entities: %w", kind, err)
	}
	translations, err := s.store.ListTranslations(ctx, kind, locale)
	if err != nil {
		return nil, nil, fmt.Errorf("translation: listing %s translations: %w", kind, err)
	}
	return entities, translations, nil
}
