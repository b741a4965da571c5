package memory

import (
	"sync"

	aggregation "commerce-views/internal/aggregation/domain"
)

// OrderStore holds the process-lifetime fixture records. Appends take the
// write lock so concurrent mutations cannot produce duplicate ids; reads copy
// the slice under the read lock so an aggregation pass works on a stable
// snapshot. Nothing is persisted, a restart resets the store to its seed.
type OrderStore struct {
	mu     sync.RWMutex
	orders []aggregation.FixtureOrder
}

// NewOrderStore constructs a store from seed records. The seed is copied.
func NewOrderStore(seed []aggregation.FixtureOrder) *OrderStore {
	return &OrderStore{orders: append([]aggregation.FixtureOrder(nil), seed...)}
}

// Snapshot returns a copy of all records in insertion order.
func (s *OrderStore) Snapshot() []aggregation.FixtureOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]aggregation.FixtureOrder(nil), s.orders...)
}

// Get returns the record with the given id.
func (s *OrderStore) Get(id int64) (aggregation.FixtureOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.orders {
		if rec.ID == id {
			return rec, true
		}
	}
	return aggregation.FixtureOrder{}, false
}

// Len returns the current record count.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Append validates the record, assigns the next id (max existing id plus
// one, or 1 for an empty store) and appends it. The passed id is ignored.
func (s *OrderStore) Append(rec aggregation.FixtureOrder) (aggregation.FixtureOrder, error) {
	if err := rec.Validate(); err != nil {
		return aggregation.FixtureOrder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for _, existing := range s.orders {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	rec.ID = maxID + 1
	s.orders = append(s.orders, rec)
	return rec, nil
}
