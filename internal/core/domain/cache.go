package domain

import "time"

// CacheStatus is the lifecycle state of a cache entry.
type CacheStatus int

const (
	// StatusIdle means the entry exists but was never fetched.
	StatusIdle CacheStatus = iota
	// StatusPending means the first fetch is in flight and no value is available yet.
	StatusPending
	// StatusResolved means the last fetch succeeded.
	StatusResolved
	// StatusErrored means the last fetch failed.
	StatusErrored
)

// String returns the lowercase name of the status.
func (s CacheStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// CacheEntry is a snapshot of a cached query result.
type CacheEntry struct {
	Key    QueryKey
	Status CacheStatus
	// Value is the last successfully fetched value. It survives later errors and invalidation.
	Value      any
	Err        error
	FetchedAt  time.Time
	StaleAfter time.Duration
	// Invalidated is set by a mutation and cleared by the next successful fetch.
	Invalidated bool
	// Fetching is true while a fetch for the key is in flight.
	Fetching bool
}

// HasValue reports whether the entry holds a value from a successful fetch.
func (e CacheEntry) HasValue() bool {
	return !e.FetchedAt.IsZero()
}

// IsStale reports whether the entry is eligible for refresh at now.
func (e CacheEntry) IsStale(now time.Time) bool {
	if e.Invalidated || e.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(e.FetchedAt) > e.StaleAfter
}

// MutationDescriptor names a write operation and the key patterns it invalidates on success.
type MutationDescriptor struct {
	Name        string
	Invalidates []QueryKey
}

// NewMutation creates a MutationDescriptor.
func NewMutation(name string, invalidates ...QueryKey) MutationDescriptor {
	return MutationDescriptor{Name: name, Invalidates: invalidates}
}
