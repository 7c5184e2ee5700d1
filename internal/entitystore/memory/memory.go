// Package memory provides an in-process entitystore driver. It is the test
// substitute for the physical backing store and the default for local tooling.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/codeu/chatstore/internal/entitystore"
)

// Store keeps one insertion-ordered record list per kind. Safe for concurrent
// use.
type Store struct {
	mu    sync.RWMutex
	kinds map[string][]record
}

type record struct {
	id    string
	props entitystore.Properties
}

func New() *Store {
	return &Store{kinds: make(map[string][]record)}
}

func (s *Store) Put(ctx context.Context, kind, id string, props entitystore.Properties) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.kinds[kind]
	for i := range recs {
		if recs[i].id == id {
			recs[i].props = props.Clone()
			return nil
		}
	}
	s.kinds[kind] = append(recs, record{id: id, props: props.Clone()})
	return nil
}

func (s *Store) Delete(ctx context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.kinds[kind]
	for i := range recs {
		if recs[i].id == id {
			s.kinds[kind] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) QueryAll(ctx context.Context, kind, orderBy string) ([]entitystore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.kinds[kind]
	out := make([]entitystore.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, entitystore.Record{ID: r.id, Props: r.props.Clone()})
	}
	if orderBy != "" {
		// Stable sort keeps insertion order for ties and for records
		// missing the order property.
		sort.SliceStable(out, func(i, j int) bool {
			a, aok := out[i].Props.Int64(orderBy)
			b, bok := out[j].Props.Int64(orderBy)
			if !aok || !bok {
				return false
			}
			return a < b
		})
	}
	return out, nil
}

// Ping always succeeds; the store lives in process memory.
func (s *Store) Ping(ctx context.Context) error { return nil }
