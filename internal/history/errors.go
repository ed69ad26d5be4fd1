package history

import "errors"

var (
	// ErrNotFound indicates a mutation referenced an unknown entry ID.
	// Mutations treat this as a no-op; callers may ignore it.
	ErrNotFound = errors.New("entry not found")

	// ErrProtectedItem indicates a delete was blocked because the entry is
	// pinned and pin protection is enabled. No mutation was performed.
	ErrProtectedItem = errors.New("entry is pinned and protected from deletion")
)
