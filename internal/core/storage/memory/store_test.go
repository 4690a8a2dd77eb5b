package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/aevon-lab/tillsync/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func order(business, id, orderID string, ts time.Time) *aggregation.Order {
	return &aggregation.Order{
		ID:         id,
		OrderID:    orderID,
		Business:   business,
		Timestamp:  ts,
		Items:      []aggregation.OrderItem{{Item: "Coffee", Quantity: 1, Price: 300}},
		TotalPrice: 300,
		RecordType: aggregation.RecordTypeOrder,
	}
}

func TestStore_CreateOrdersIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateOrders(ctx, []*aggregation.Order{order("biz-1", "d1", "T1", now)}))

	err := s.CreateOrders(ctx, []*aggregation.Order{
		order("biz-1", "d2", "T2", now),
		order("biz-1", "d3", "T1", now), // upstream id already stored
	})
	require.ErrorIs(t, err, storage.ErrConflict)

	orders, err := s.ListOrders(ctx, "biz-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	err = s.CreateOrders(ctx, []*aggregation.Order{order("biz-1", "d1", "T9", now)})
	require.ErrorIs(t, err, storage.ErrConflict)
}

func TestStore_ExistingOrderIDsIsPartitionScoped(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()
	require.NoError(t, s.CreateOrders(ctx, []*aggregation.Order{order("biz-1", "d1", "T1", now)}))

	found, err := s.ExistingOrderIDs(ctx, "biz-1", []string{"T1", "T2"})
	require.NoError(t, err)
	require.Equal(t, map[string]struct{}{"T1": {}}, found)

	found, err = s.ExistingOrderIDs(ctx, "biz-2", []string{"T1"})
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestStore_AggregatesAreScopedAndCopied(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	a := aggregation.NewAggregate("biz-1", aggregation.PeriodDay, "2025-01-15")
	a.TotalRevenue = 100
	b := aggregation.NewAggregate("biz-2", aggregation.PeriodDay, "2025-01-15")
	b.TotalRevenue = 999
	require.NoError(t, s.UpsertAggregate(ctx, a))
	require.NoError(t, s.UpsertAggregate(ctx, b))

	a.TotalRevenue = 5 // caller mutation after upsert must not leak in

	got, err := s.QueryAggregates(ctx, "biz-1", []string{"day-2025-01-15", "year-2025"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(100), got["day-2025-01-15"].TotalRevenue)

	list, err := s.ListAggregates(ctx, "biz-2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, int64(999), list[0].TotalRevenue)
}

func TestStore_Profiles(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.GetProfile(ctx, "uid-1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.UpsertProfile(ctx, &aggregation.Profile{ID: "uid-1", Business: "biz-1", DeviceID: "dev-1"}))
	p, err := s.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	require.Equal(t, "biz-1", p.Business)
	require.Equal(t, aggregation.RecordTypeProfile, p.RecordType)

	all, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NoError(t, s.Ping(ctx))
}
