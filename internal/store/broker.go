package store

import (
	"sync"

	"github.com/mkarimzade/matchcore/internal/domain"
)

// BrokerStore is a thread-safe in-memory lookup table for brokers,
// keyed by broker ID.
type BrokerStore struct {
	mu      sync.RWMutex
	brokers map[int64]*domain.Broker
}

// NewBrokerStore creates an empty BrokerStore.
func NewBrokerStore() *BrokerStore {
	return &BrokerStore{
		brokers: make(map[int64]*domain.Broker),
	}
}

// Create adds a broker. It returns domain.ErrBrokerExists if the ID is
// already registered.
func (s *BrokerStore) Create(b *domain.Broker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.brokers[b.BrokerID]; exists {
		return domain.ErrBrokerExists
	}
	s.brokers[b.BrokerID] = b
	return nil
}

// Get retrieves a broker by ID. It returns domain.ErrBrokerNotFound if the
// broker does not exist.
func (s *BrokerStore) Get(id int64) (*domain.Broker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.brokers[id]
	if !ok {
		return nil, domain.ErrBrokerNotFound
	}
	return b, nil
}
