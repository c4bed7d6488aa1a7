package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind    = errors.New("catalog: unknown entity kind")
	ErrUnknownGroup   = errors.New("catalog: unknown entity group")
	ErrUnknownLocale  = errors.New("catalog: unknown locale")
	ErrEntityRequired = errors.New("catalog: entity id required")
	ErrLocaleRequired = errors.New("catalog: locale code required")
	ErrNotFound       = errors.New("catalog: record not found")
)

// NotFoundError reports a missing record along with the resource and key
// that were looked up.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("catalog: %s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
