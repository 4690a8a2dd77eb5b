package storage

import (
	"context"
	"errors"

	"github.com/aevon-lab/tillsync/internal/core/aggregation"
)

var (
	// ErrConflict is returned when a document with the same (business, id) already
	// exists, or an order with the same upstream order id exists for the business.
	ErrConflict = errors.New("document already exists")

	// ErrNotFound is returned by point reads that match no document.
	ErrNotFound = errors.New("document not found")
)

// DocumentStore is the partitioned document store behind the aggregation engine.
// The partition key of every order and aggregate is its business; no method reads or
// writes across businesses except the profile lookups, which resolve the business.
type DocumentStore interface {
	// CreateOrders inserts the orders of one cycle as a single all-or-nothing batch.
	// Returns ErrConflict if any primary key or upstream order id already exists.
	CreateOrders(ctx context.Context, orders []*aggregation.Order) error

	// ExistingOrderIDs returns the subset of upstream order ids already stored for business.
	ExistingOrderIDs(ctx context.Context, business string, orderIDs []string) (map[string]struct{}, error)

	// QueryAggregates returns the aggregates of business whose composite id is in ids,
	// keyed by composite id.
	QueryAggregates(ctx context.Context, business string, ids []string) (map[string]*aggregation.Aggregate, error)

	// UpsertAggregate replaces or creates the full aggregate document keyed by
	// (business, id). Repeating the call with the same document is a no-op in effect.
	UpsertAggregate(ctx context.Context, agg *aggregation.Aggregate) error

	// ListAggregates returns every time report of business ordered by id.
	ListAggregates(ctx context.Context, business string) ([]*aggregation.Aggregate, error)

	// ListOrders returns every order of business ordered by timestamp.
	ListOrders(ctx context.Context, business string) ([]*aggregation.Order, error)

	// GetProfile resolves a user uid to its profile. Returns ErrNotFound if unknown.
	GetProfile(ctx context.Context, uid string) (*aggregation.Profile, error)

	// ListProfiles returns every registered profile.
	ListProfiles(ctx context.Context) ([]*aggregation.Profile, error)

	// UpsertProfile stores a profile. Used by the profile management layer and tests.
	UpsertProfile(ctx context.Context, p *aggregation.Profile) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
