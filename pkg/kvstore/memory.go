package kvstore

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local tooling.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	sets    map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string][]byte{},
		sets:    map[string]map[string]struct{}{},
	}
}

func (s *MemoryStore) Get(key string, out interface{}) (bool, error) {
	s.mu.RLock()
	bytes, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	err := json.Unmarshal(bytes, out)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *MemoryStore) Set(key string, value interface{}) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = bytes
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SetAdd(set string, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.sets[set]
	if !ok {
		members = map[string]struct{}{}
		s.sets[set] = members
	}
	members[member] = struct{}{}
	return nil
}

func (s *MemoryStore) SetRemove(set string, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if members, ok := s.sets[set]; ok {
		delete(members, member)
		if len(members) == 0 {
			delete(s.sets, set)
		}
	}
	return nil
}

func (s *MemoryStore) SetContains(set string, member string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members, ok := s.sets[set]
	if !ok {
		return false, nil
	}
	_, ok = members[member]
	return ok, nil
}

func (s *MemoryStore) SetMembers(set string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]string, 0, len(s.sets[set]))
	for member := range s.sets[set] {
		members = append(members, member)
	}
	return members, nil
}
