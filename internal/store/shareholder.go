package store

import (
	"sync"

	"github.com/mkarimzade/matchcore/internal/domain"
)

// ShareholderStore is a thread-safe in-memory lookup table for
// shareholders, keyed by shareholder ID.
type ShareholderStore struct {
	mu           sync.RWMutex
	shareholders map[int64]*domain.Shareholder
}

// NewShareholderStore creates an empty ShareholderStore.
func NewShareholderStore() *ShareholderStore {
	return &ShareholderStore{
		shareholders: make(map[int64]*domain.Shareholder),
	}
}

// Create adds a shareholder. It returns domain.ErrShareholderExists if the
// ID is already registered.
func (s *ShareholderStore) Create(sh *domain.Shareholder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shareholders[sh.ShareholderID]; exists {
		return domain.ErrShareholderExists
	}
	s.shareholders[sh.ShareholderID] = sh
	return nil
}

// Get retrieves a shareholder by ID. It returns
// domain.ErrShareholderNotFound if the shareholder does not exist.
func (s *ShareholderStore) Get(id int64) (*domain.Shareholder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, ok := s.shareholders[id]
	if !ok {
		return nil, domain.ErrShareholderNotFound
	}
	return sh, nil
}
