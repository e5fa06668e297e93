package store

import (
	"context"
	"sync"
)

// MemoryStore keeps selections in process. Stores created from the same MemoryBackend share
// data, which is how selections survive a component being closed and recreated.
type MemoryStore struct {
	backend *MemoryBackend
	prefix  string
}

type MemoryBackend struct {
	data map[string]map[string]string // prefix -> id -> encoded selection
	lock sync.Mutex
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string]string)}
}

func (b *MemoryBackend) Store(prefix string) *MemoryStore {
	return &MemoryStore{backend: b, prefix: prefix}
}

func (s *MemoryStore) Load(ctx context.Context, id string) ([]string, bool, error) {
	s.backend.lock.Lock()
	data, ok := s.backend.data[s.prefix][id]
	s.backend.lock.Unlock()
	if !ok {
		return nil, false, nil
	}
	selected, err := DecodeSelection(data)
	return selected, err == nil, err
}

func (s *MemoryStore) Save(ctx context.Context, id string, selected []string) error {
	data, err := EncodeSelection(selected)
	if err != nil {
		return err
	}
	s.backend.lock.Lock()
	defer s.backend.lock.Unlock()
	ids := s.backend.data[s.prefix]
	if ids == nil {
		ids = make(map[string]string)
		s.backend.data[s.prefix] = ids
	}
	ids[id] = data
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.backend.lock.Lock()
	delete(s.backend.data[s.prefix], id)
	s.backend.lock.Unlock()
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.backend.lock.Lock()
	delete(s.backend.data, s.prefix)
	s.backend.lock.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
