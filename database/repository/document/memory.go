package documentRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// memoryStore keeps documents in process. Used for local runs and tests; values are
// copied through JSON so callers see the same shapes a real backend returns.
type memoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

// NewMemoryStore returns an empty in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{docs: make(map[string]map[string][]byte)}
}

func (s *memoryStore) Create(_ context.Context, collection, id string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("memory create %s/%s: %w", collection, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.docs[collection]
	if !ok {
		coll = make(map[string][]byte)
		s.docs[collection] = coll
	}
	if _, exists := coll[id]; exists {
		return ErrAlreadyExists
	}
	coll[id] = raw
	return nil
}

func (s *memoryStore) Read(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	raw, ok := s.docs[collection][id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *memoryStore) Update(_ context.Context, collection, id string, partial Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.docs[collection][id]
	if !ok {
		return ErrNotFound
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, v := range partial {
		doc[k] = v
	}
	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("memory update %s/%s: %w", collection, id, err)
	}
	s.docs[collection][id] = updated
	return nil
}

func (s *memoryStore) Ping(context.Context) error { return nil }
