package store

import (
	"sync"

	"github.com/mkarimzade/matchcore/internal/domain"
	"github.com/mkarimzade/matchcore/internal/engine"
)

// SecurityStore is a thread-safe in-memory lookup table for securities,
// keyed by ISIN.
type SecurityStore struct {
	mu         sync.RWMutex
	securities map[string]*engine.Security
}

// NewSecurityStore creates an empty SecurityStore.
func NewSecurityStore() *SecurityStore {
	return &SecurityStore{
		securities: make(map[string]*engine.Security),
	}
}

// Create adds a security. It returns domain.ErrSecurityExists if the ISIN
// is already registered.
func (s *SecurityStore) Create(sec *engine.Security) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.securities[sec.ISIN]; exists {
		return domain.ErrSecurityExists
	}
	s.securities[sec.ISIN] = sec
	return nil
}

// Get retrieves a security by ISIN. It returns domain.ErrSecurityNotFound
// if the ISIN is unknown.
func (s *SecurityStore) Get(isin string) (*engine.Security, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sec, ok := s.securities[isin]
	if !ok {
		return nil, domain.ErrSecurityNotFound
	}
	return sec, nil
}
