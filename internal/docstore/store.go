// Package docstore wraps the remote document database behind a small
// interface so that repositories receive the store as an explicit
// dependency and tests can swap in an in-memory implementation.
//
// Collections are addressed by slash separated paths, scoped by the
// authenticated user's id (e.g. "users/{uid}/workouts"), documents by
// the collection path plus the document id.
package docstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("document not found")

type Document struct {
	ID   string
	Data map[string]any
}

// Query describes the only store capabilities the repositories rely
// on: order by a single field, in either direction, with an optional
// result limit. Ties on the order field fall back to store-default
// document id order.
type Query struct {
	OrderBy    string
	Descending bool
	Limit      int // 0 means no limit
}

type Store interface {
	// Add creates a new document in the given collection and returns
	// the store generated id.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Set writes the document at the given doc path, creating it if needed.
	Set(ctx context.Context, doc string, data map[string]any) error
	// Get returns the document data, or ErrNotFound.
	Get(ctx context.Context, doc string) (map[string]any, error)
	// Find returns all documents in the collection whose field equals value.
	Find(ctx context.Context, collection, field string, value any) ([]Document, error)
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	// Delete removes the document; deleting a missing document is not an error.
	Delete(ctx context.Context, doc string) error
}

// Int reads back an integer field regardless of the concrete type the
// store returned it as (Firestore hands out int64, the in-memory store
// whatever was written).
func Int(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	default:
		return 0
	}
}

func Float(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0
	}
}

func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func Time(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}
