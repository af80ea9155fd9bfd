// Package session keeps uploaded reports and analysis results between
// requests. Values are stored as JSON snapshots, so every Get returns a fresh
// copy that the caller may modify freely.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind names one slot of a session.
type Kind string

const (
	KindSearchTerms Kind = "search_terms"
	KindBulk        Kind = "bulk"
	KindResults     Kind = "results"
)

// Kinds lists every slot, in upload order.
var Kinds = []Kind{KindSearchTerms, KindBulk, KindResults}

// ErrNotFound is returned when a session slot is missing or expired.
var ErrNotFound = errors.New("session not found")

// DefaultTTL applies when a store is created with a zero TTL.
const DefaultTTL = 24 * time.Hour

// Store persists session slots.
type Store interface {
	// Put replaces the slot with the JSON encoding of v.
	Put(ctx context.Context, id string, kind Kind, v any) error
	// Get decodes the slot into dst, or returns ErrNotFound.
	Get(ctx context.Context, id string, kind Kind, dst any) error
	// Delete drops every slot of the session.
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Exists reports whether the slot is present.
func Exists(ctx context.Context, s Store, id string, kind Kind) (bool, error) {
	var raw rawJSON
	err := s.Get(ctx, id, kind, &raw)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// rawJSON accepts any payload without decoding it.
type rawJSON []byte

func (r *rawJSON) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}
