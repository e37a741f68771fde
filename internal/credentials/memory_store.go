package credentials

import (
	"context"
	"sync"
)

// MemoryStore keeps grants in a mutex-guarded map. Used in tests and
// for ephemeral deployments where re-authorization on restart is
// acceptable.
type MemoryStore struct {
	mu     sync.RWMutex
	grants map[string]*Grant
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{grants: make(map[string]*Grant)}
}

// Load returns the stored grant for a tenant, or ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, tenant string) (*Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[sanitizeTenant(tenant)]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers never mutate the stored grant in place.
	cp := *g
	return &cp, nil
}

// Save persists the grant for a tenant.
func (s *MemoryStore) Save(ctx context.Context, tenant string, g *Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *g
	s.grants[sanitizeTenant(tenant)] = &cp
	return nil
}

// Delete removes the grant for a tenant.
func (s *MemoryStore) Delete(ctx context.Context, tenant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.grants, sanitizeTenant(tenant))
	return nil
}
