package translation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rulekeep/rulekeep/internal/catalog"
)

var (
	// ErrStoreRequired reports a runner or service constructed without a
	// catalog store.
	ErrStoreRequired = errors.New("translation: catalog store is required")
	// ErrTranslatorRequired reports a runner constructed without a provider
	// adapter.
	ErrTranslatorRequired = errors.New("translation: translator is required")
	// ErrLocaleRequired reports a run triggered without a target locale.
	ErrLocaleRequired = errors.New("translation: target locale is required")
	// ErrGroupRequired reports a run triggered with an unknown group.
	ErrGroupRequired = errors.New("translation: run group is required")
	// ErrRunActive reports a second trigger for a (group, locale) pair that
	// already has a run in flight.
	ErrRunActive = errors.New("translation: run already active for group and locale")
	// ErrRunAborted reports a run stopped by context cancellation. Writes
	// applied before the abort stand; nothing is rolled back.
	ErrRunAborted = errors.New("translation: run aborted")
)

// SelectionError reports an entity excluded from a work list because a
// required source field is blank. This is a data-integrity problem upstream
// of the pipeline; the entity is skipped, not retried.
type SelectionError struct {
	Kind     catalog.Kind
	EntityID uuid.UUID
	Field    catalog.Field
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("translation: %s %s has no source text for %s", e.Kind, e.EntityID, e.Field)
}

// ProviderError reports a failed or malformed provider call for one entity.
// The entity's fields stay blank and the run continues.
type ProviderError struct {
	Kind     catalog.Kind
	EntityID uuid.UUID
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("translation: provider call for %s %s failed: %v", e.Kind, e.EntityID, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PersistenceError reports a failed write of a successful translation. The
// closing refetch restores the durable truth, so the entity is re-flagged
// as missing on the next completeness read.
type PersistenceError struct {
	Kind     catalog.Kind
	EntityID uuid.UUID
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("translation: persisting %s %s failed: %v", e.Kind, e.EntityID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
