// Package store persists named JSON documents for the goal companion.
//
// Keys are logical paths ("goal-form", "journal/2026-08-30"). The store
// never reports read errors: a missing or unparseable document is simply
// absent, and callers supply their own default. Writes commit with
// all-or-nothing visibility. No cross-process locking is provided;
// overlapping writers to the same key race and the last write wins.
package store

import "context"

// Store is the persistence contract shared by all backends.
type Store interface {
	// Read decodes the document at key into out and reports whether a
	// usable document existed. Missing and corrupt both read as false.
	Read(ctx context.Context, key string, out any) bool

	// Write commits doc at key so that a concurrent reader observes
	// either the previous document or the new one, never a partial.
	Write(ctx context.Context, key string, doc any) error

	// List returns the keys under a prefix namespace, best effort.
	List(ctx context.Context, prefix string) []string
}
