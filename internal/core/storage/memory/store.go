package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/aevon-lab/tillsync/internal/core/storage"
)

type docKey struct {
	business string
	id       string
}

// Store is an in-memory storage.DocumentStore.
// Useful for testing and development. Documents are copied on the way in and out so
// callers can never alias stored state.
type Store struct {
	mu         sync.RWMutex
	orders     map[docKey]*aggregation.Order
	orderIDs   map[docKey]struct{} // (business, upstream order id)
	aggregates map[docKey]*aggregation.Aggregate
	profiles   map[string]*aggregation.Profile

	// QueryHook, when set, runs after every aggregate query returns its snapshot.
	QueryHook func(business string)

	// UpsertHook, when set, runs before every aggregate upsert; a non-nil error fails it.
	UpsertHook func(agg *aggregation.Aggregate) error
}

var _ storage.DocumentStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:     make(map[docKey]*aggregation.Order),
		orderIDs:   make(map[docKey]struct{}),
		aggregates: make(map[docKey]*aggregation.Aggregate),
		profiles:   make(map[string]*aggregation.Profile),
	}
}

func (s *Store) CreateOrders(_ context.Context, orders []*aggregation.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batchIDs := make(map[docKey]struct{}, len(orders))
	batchOrderIDs := make(map[docKey]struct{}, len(orders))
	for _, o := range orders {
		k := docKey{o.Business, o.ID}
		ok := docKey{o.Business, o.OrderID}
		if _, exists := s.orders[k]; exists {
			return fmt.Errorf("order %s: %w", o.ID, storage.ErrConflict)
		}
		if _, exists := batchIDs[k]; exists {
			return fmt.Errorf("order %s: %w", o.ID, storage.ErrConflict)
		}
		if _, exists := s.orderIDs[ok]; exists {
			return fmt.Errorf("order id %s: %w", o.OrderID, storage.ErrConflict)
		}
		if _, exists := batchOrderIDs[ok]; exists {
			return fmt.Errorf("order id %s: %w", o.OrderID, storage.ErrConflict)
		}
		batchIDs[k] = struct{}{}
		batchOrderIDs[ok] = struct{}{}
	}

	for _, o := range orders {
		c, err := copyDoc(o)
		if err != nil {
			return err
		}
		s.orders[docKey{o.Business, o.ID}] = c
		s.orderIDs[docKey{o.Business, o.OrderID}] = struct{}{}
	}
	return nil
}

func (s *Store) ExistingOrderIDs(_ context.Context, business string, orderIDs []string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]struct{})
	for _, id := range orderIDs {
		if _, ok := s.orderIDs[docKey{business, id}]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

func (s *Store) QueryAggregates(_ context.Context, business string, ids []string) (map[string]*aggregation.Aggregate, error) {
	s.mu.RLock()
	out := make(map[string]*aggregation.Aggregate)
	for _, id := range ids {
		if agg, ok := s.aggregates[docKey{business, id}]; ok {
			out[id] = agg.Clone()
		}
	}
	s.mu.RUnlock()

	if s.QueryHook != nil {
		s.QueryHook(business)
	}
	return out, nil
}

func (s *Store) UpsertAggregate(_ context.Context, agg *aggregation.Aggregate) error {
	if s.UpsertHook != nil {
		if err := s.UpsertHook(agg); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregates[docKey{agg.Business, agg.ID}] = agg.Clone()
	return nil
}

func (s *Store) ListAggregates(_ context.Context, business string) ([]*aggregation.Aggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*aggregation.Aggregate{}
	for k, agg := range s.aggregates {
		if k.business == business {
			out = append(out, agg.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListOrders(_ context.Context, business string) ([]*aggregation.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*aggregation.Order{}
	for k, o := range s.orders {
		if k.business != business {
			continue
		}
		c, err := copyDoc(o)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (s *Store) GetProfile(_ context.Context, uid string) (*aggregation.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[uid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *Store) ListProfiles(_ context.Context) ([]*aggregation.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*aggregation.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpsertProfile(_ context.Context, p *aggregation.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *p
	c.RecordType = aggregation.RecordTypeProfile
	s.profiles[p.ID] = &c
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

// copyDoc deep-copies an order through its JSON form, the same shape the SQL store keeps.
func copyDoc(o *aggregation.Order) (*aggregation.Order, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("copy order %s: %w", o.ID, err)
	}
	var c aggregation.Order
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("copy order %s: %w", o.ID, err)
	}
	return &c, nil
}
