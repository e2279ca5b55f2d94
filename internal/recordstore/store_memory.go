package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"sync"
)

// MemoryStore is an in-memory record store keyed by entity logical name and
// record id. Retrieve applies $select / $expand projection the way the Web
// API does, so resolver behaviour is identical against either store.
type MemoryStore struct {
	mu         sync.RWMutex
	records    map[string]map[string]Record
	restricted map[string]struct{}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:    make(map[string]map[string]Record),
		restricted: make(map[string]struct{}),
	}
}

// LoadFixture builds a store from JSON of the form
// {"<entityType>": {"<id>": {<field>: <value>, ...}}}.
func LoadFixture(r io.Reader) (*MemoryStore, error) {
	var fixture map[string]map[string]Record
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("decode record fixture: %w", err)
	}
	s := NewMemoryStore()
	for entityType, byID := range fixture {
		for id, rec := range byID {
			s.Put(entityType, id, rec)
		}
	}
	return s, nil
}

// Put stores (or replaces) a record.
func (s *MemoryStore) Put(entityType, id string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.records[entityType]
	if !ok {
		byID = make(map[string]Record)
		s.records[entityType] = byID
	}
	byID[normalizeID(id)] = maps.Clone(rec)
}

// Restrict makes every Retrieve of entityType fail with an access-denied error.
func (s *MemoryStore) Restrict(entityType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restricted[entityType] = struct{}{}
}

// Retrieve returns a projection of the stored record.
func (s *MemoryStore) Retrieve(ctx context.Context, entityType, id string, q Query) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, denied := s.restricted[entityType]; denied {
		return nil, accessDenied(entityType, id)
	}
	rec, ok := s.records[entityType][normalizeID(id)]
	if !ok {
		return nil, notFound(entityType, id)
	}
	return project(rec, q), nil
}

// Len returns the number of stored records across all entity types.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, byID := range s.records {
		n += len(byID)
	}
	return n
}

// project mimics Web API option handling. An empty query returns the whole
// record. Unset selected fields come back as null.
func project(rec Record, q Query) Record {
	if q.Select == "" && q.Expand == "" {
		return maps.Clone(rec)
	}

	out := make(Record)
	if q.Select != "" {
		out[q.Select] = rec[q.Select]
	}
	if q.Expand != "" {
		collection, field, ok := ParseExpand(q.Expand)
		if !ok {
			return out
		}
		items, present := RelatedItems(rec[collection])
		if !present {
			return out
		}
		projected := make([]any, 0, len(items))
		for _, item := range items {
			projected = append(projected, map[string]any{field: item[field]})
		}
		out[collection] = projected
	}
	return out
}

// RelatedItems returns the elements of an expanded related collection. ok is
// false when v is not a collection at all.
func RelatedItems(v any) ([]map[string]any, bool) {
	switch items := v.(type) {
	case []map[string]any:
		return items, true
	case []Record:
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			out = append(out, item)
		}
		return out, true
	case []any:
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, m)
			case Record:
				out = append(out, m)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
