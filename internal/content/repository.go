// Package content provides read-only access to class definitions for the
// derivation pipeline: file-backed packs, a bounded shared cache, and a
// per-pass memo.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/lawnchairsociety/heroforge/internal/class"
)

// Repository resolves class definitions by id. Implementations must be
// read-only and safe for concurrent use. Returned definitions are shared and
// must not be modified.
type Repository interface {
	Class(ctx context.Context, id class.ID) (*class.Definition, error)
}

// Resolved pairs a class entry with its definition.
type Resolved struct {
	Entry      class.Entry
	Definition *class.Definition
}

// Resolve looks up one class and converts a missing definition into a
// ConfigurationError. Other failures (I/O, cancellation) are wrapped as-is.
func Resolve(ctx context.Context, repo Repository, id class.ID) (*class.Definition, error) {
	def, err := repo.Class(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &ConfigurationError{ClassID: id, Reason: "class does not resolve", Err: err}
		}
		return nil, fmt.Errorf("resolve class %s: %w", id, err)
	}
	if def == nil {
		return nil, NewConfigurationError(id, "class resolved to an empty definition")
	}
	return def, nil
}

// ResolveEntries resolves every entry in order. The first failure aborts.
func ResolveEntries(ctx context.Context, repo Repository, entries []class.Entry) ([]Resolved, error) {
	resolved := make([]Resolved, 0, len(entries))
	for _, e := range entries {
		def, err := Resolve(ctx, repo, e.ClassID)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, Resolved{Entry: e, Definition: def})
	}
	return resolved, nil
}
