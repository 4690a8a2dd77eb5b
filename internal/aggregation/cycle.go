package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/tillsync/internal/api/v1"
	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/aevon-lab/tillsync/internal/core/storage"
	"github.com/aevon-lab/tillsync/internal/devicesync"
	"github.com/aevon-lab/tillsync/internal/ingestion"
	"github.com/aevon-lab/tillsync/internal/lock"
	"github.com/aevon-lab/tillsync/internal/metrics"
	"github.com/aevon-lab/tillsync/internal/tenant"
	"github.com/google/uuid"
)

const defaultOpTimeout = 10 * time.Second

// Phase is a step of one ingestion cycle.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseFetching      Phase = "fetching"
	PhaseGrouping      Phase = "grouping"
	PhaseAggregating   Phase = "aggregating"
	PhasePersisting    Phase = "persisting"
	PhaseAcknowledging Phase = "acknowledging"
)

// Orchestrator runs fetch -> group -> merge -> persist -> acknowledge cycles.
// Cycles for the same business are serialized through the Locker; different
// businesses run concurrently.
type Orchestrator struct {
	store     storage.DocumentStore
	channel   devicesync.Channel
	locker    lock.Locker
	metrics   metrics.Recorder
	opTimeout time.Duration
	newID     func() string
	observe   func(business string, from, to Phase)
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics records cycle outcomes on m.
func WithMetrics(m metrics.Recorder) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithOpTimeout bounds every individual store call.
func WithOpTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.opTimeout = d
		}
	}
}

// WithIDGenerator overrides how order document ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) { o.newID = fn }
}

// WithPhaseObserver is called on every phase transition.
func WithPhaseObserver(fn func(business string, from, to Phase)) Option {
	return func(o *Orchestrator) { o.observe = fn }
}

// NewOrchestrator wires the cycle to its store, device channel and business lock.
func NewOrchestrator(store storage.DocumentStore, channel devicesync.Channel, locker lock.Locker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:     store,
		channel:   channel,
		locker:    locker,
		metrics:   (*metrics.Metrics)(nil),
		opTimeout: defaultOpTimeout,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// cycle carries the per-run state used for phase logging.
type cycle struct {
	o      *Orchestrator
	tenant tenant.Tenant
	phase  Phase
	log    *slog.Logger
}

func (c *cycle) enter(next Phase) {
	c.log.Debug("[Cycle] Phase transition", "from", c.phase, "to", next)
	if c.o.observe != nil {
		c.o.observe(c.tenant.Business, c.phase, next)
	}
	c.phase = next
}

func (o *Orchestrator) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.opTimeout)
}

// RunCycle pulls the device buffer of t and folds every new order into the business
// aggregates.
//
// A fetch failure returns an error wrapping a devicesync sentinel and leaves the buffer
// untouched. An order write failure aborts before any aggregate is written and nothing is
// acknowledged. Aggregate upsert failures and a failed acknowledgement do not fail the
// cycle; they are reported in the summary. After an upsert failure the buffer is left
// for redelivery, and a redelivered order missing from its aggregates makes the next
// cycle rebuild the business before folding new orders.
func (o *Orchestrator) RunCycle(ctx context.Context, t tenant.Tenant) (*v1.CycleSummary, error) {
	start := time.Now()

	release, err := o.locker.Lock(ctx, t.Business)
	if err != nil {
		o.metrics.CycleFinished(metrics.OutcomeLockFailed, time.Since(start))
		return nil, fmt.Errorf("acquire business lock: %w", err)
	}
	defer release()

	c := &cycle{
		o:      o,
		tenant: t,
		phase:  PhaseIdle,
		log:    slog.With("business", t.Business, "device_id", t.DeviceID),
	}

	summary, outcome, err := o.run(ctx, c)
	c.enter(PhaseIdle)
	o.metrics.CycleFinished(outcome, time.Since(start))
	if err != nil {
		c.log.Error("[Cycle] Cycle failed", "outcome", outcome, "error", err)
		return nil, err
	}

	c.log.Info("[Cycle] Cycle complete",
		"orders", summary.OrderCount,
		"periods_touched", summary.PeriodsTouched,
		"rows_fetched", summary.RowsFetched,
		"rows_skipped", summary.RowsSkipped,
		"duplicates", summary.DuplicateOrders,
		"failed_aggregates", len(summary.FailedAggregates),
		"repaired", summary.Repaired,
		"acknowledged", summary.Acknowledged,
		"duration", time.Since(start),
	)
	return summary, nil
}

func (o *Orchestrator) run(ctx context.Context, c *cycle) (*v1.CycleSummary, string, error) {
	t := c.tenant
	summary := &v1.CycleSummary{Business: t.Business, FailedAggregates: []string{}}

	c.enter(PhaseFetching)
	rows, err := o.channel.FetchPurchases(ctx, t.DeviceID)
	if err != nil {
		return nil, metrics.OutcomeFetchFailed, fmt.Errorf("fetch purchases from %s: %w", t.DeviceID, err)
	}
	summary.RowsFetched = len(rows)

	c.enter(PhaseGrouping)
	grouped := ingestion.GroupOrders(rows, t.Business, o.newID)
	summary.RowsSkipped = len(grouped.Skipped)
	o.metrics.RowsSkipped(len(grouped.Skipped))

	fresh, redelivered, err := o.dropIngested(ctx, c, grouped.Orders)
	if err != nil {
		return nil, metrics.OutcomePersistFailed, err
	}
	summary.DuplicateOrders = len(redelivered)
	o.metrics.DuplicateOrders(summary.DuplicateOrders)

	// Once the first write starts, the cycle finishes its writes and the acknowledgement
	// even if the caller goes away; each store call is still bounded by opTimeout.
	writeCtx := context.WithoutCancel(ctx)

	if len(redelivered) > 0 {
		folded, err := o.alreadyFolded(ctx, t.Business, redelivered)
		if err != nil {
			return nil, metrics.OutcomePersistFailed, err
		}
		if !folded {
			c.log.Warn("[Cycle] Redelivered orders are missing from their aggregates, rebuilding")
			rebuilt, err := o.rebuild(writeCtx, t.Business, c.log)
			if err != nil {
				return nil, metrics.OutcomePersistFailed, fmt.Errorf("repair aggregates: %w", err)
			}
			summary.Repaired = true
			summary.FailedAggregates = append(summary.FailedAggregates, rebuilt.FailedAggregates...)
		}
	}

	if len(fresh) > 0 {
		c.enter(PhaseAggregating)
		acc, err := o.fold(ctx, t.Business, fresh)
		if err != nil {
			return nil, metrics.OutcomePersistFailed, err
		}

		c.enter(PhasePersisting)
		opCtx, cancel := o.storeCtx(writeCtx)
		err = o.store.CreateOrders(opCtx, fresh)
		cancel()
		if err != nil {
			return nil, metrics.OutcomePersistFailed, fmt.Errorf("persist %d orders: %w", len(fresh), err)
		}
		o.metrics.OrdersIngested(len(fresh))

		summary.OrderCount = len(fresh)
		summary.PeriodsTouched = acc.Len()
		summary.FailedAggregates = append(summary.FailedAggregates, o.upsertAll(writeCtx, c.log, acc.Aggregates())...)
	}

	switch {
	case summary.RowsFetched == 0:
	case len(summary.FailedAggregates) > 0:
		// Keep the rows on the device; their redelivery triggers the repair above.
		c.log.Warn("[Cycle] Leaving device buffer for redelivery", "failed_aggregates", len(summary.FailedAggregates))
	default:
		c.enter(PhaseAcknowledging)
		opCtx, cancel := context.WithTimeout(writeCtx, o.opTimeout)
		err := o.channel.ClearBuffer(opCtx, t.DeviceID)
		cancel()
		if err != nil {
			// Everything is durable; redelivered rows are dropped by the dedup check.
			c.log.Warn("[Cycle] Failed to clear device buffer", "error", err)
			o.metrics.AckFailed()
		} else {
			summary.Acknowledged = true
		}
	}

	if len(summary.FailedAggregates) > 0 {
		return summary, metrics.OutcomePartialFailure, nil
	}
	return summary, metrics.OutcomeSuccess, nil
}

// dropIngested splits orders into those not yet stored for the business and those
// redelivered after an earlier cycle stored them.
func (o *Orchestrator) dropIngested(ctx context.Context, c *cycle, orders []*aggregation.Order) (fresh, redelivered []*aggregation.Order, err error) {
	if len(orders) == 0 {
		return orders, nil, nil
	}

	ids := make([]string, len(orders))
	for i, ord := range orders {
		ids[i] = ord.OrderID
	}

	opCtx, cancel := o.storeCtx(ctx)
	existing, err := o.store.ExistingOrderIDs(opCtx, c.tenant.Business, ids)
	cancel()
	if err != nil {
		return nil, nil, fmt.Errorf("check existing orders: %w", err)
	}

	fresh = make([]*aggregation.Order, 0, len(orders))
	for _, ord := range orders {
		if _, dup := existing[ord.OrderID]; dup {
			c.log.Info("[Cycle] Skipping already ingested order", "order_id", ord.OrderID)
			redelivered = append(redelivered, ord)
			continue
		}
		fresh = append(fresh, ord)
	}
	return fresh, redelivered, nil
}

// alreadyFolded reports whether every stored order appears in all four of its
// aggregates. An order stored without its aggregates means an earlier cycle stopped
// between the order write and the aggregate upserts.
func (o *Orchestrator) alreadyFolded(ctx context.Context, business string, orders []*aggregation.Order) (bool, error) {
	opCtx, cancel := o.storeCtx(ctx)
	persisted, err := o.store.QueryAggregates(opCtx, business, aggregation.RequiredIDs(orders))
	cancel()
	if err != nil {
		return false, fmt.Errorf("load aggregates: %w", err)
	}

	processed := make(map[string]map[string]struct{}, len(persisted))
	for id, agg := range persisted {
		set := make(map[string]struct{}, len(agg.ProcessedTransactions))
		for _, tx := range agg.ProcessedTransactions {
			set[tx] = struct{}{}
		}
		processed[id] = set
	}

	for _, ord := range orders {
		for _, id := range aggregation.KeysFor(ord.Timestamp).CompositeIDs() {
			if _, ok := processed[id][ord.OrderID]; !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// fold pre-fetches every aggregate the orders touch in one query and folds the orders in.
func (o *Orchestrator) fold(ctx context.Context, business string, orders []*aggregation.Order) (*aggregation.Accumulator, error) {
	opCtx, cancel := o.storeCtx(ctx)
	persisted, err := o.store.QueryAggregates(opCtx, business, aggregation.RequiredIDs(orders))
	cancel()
	if err != nil {
		return nil, fmt.Errorf("load aggregates: %w", err)
	}

	acc := aggregation.NewAccumulator(business, persisted)
	for _, ord := range orders {
		acc.Fold(ord, aggregation.KeysFor(ord.Timestamp))
	}
	return acc, nil
}

// upsertAll writes every aggregate independently and returns the ids that failed.
func (o *Orchestrator) upsertAll(ctx context.Context, log *slog.Logger, aggs []*aggregation.Aggregate) []string {
	failed := []string{}
	for _, agg := range aggs {
		opCtx, cancel := o.storeCtx(ctx)
		err := o.store.UpsertAggregate(opCtx, agg)
		cancel()
		if err != nil {
			log.Error("[Cycle] Failed to upsert aggregate", "aggregate_id", agg.ID, "error", err)
			o.metrics.AggregateUpsertFailed()
			failed = append(failed, agg.ID)
		}
	}
	return failed
}

// Rebuild recomputes every aggregate of business from its persisted orders and
// replaces the stored documents. Aggregates with no remaining orders are reset to zero.
// It takes the same business lock as RunCycle.
func (o *Orchestrator) Rebuild(ctx context.Context, business string) (*v1.RebuildSummary, error) {
	release, err := o.locker.Lock(ctx, business)
	if err != nil {
		return nil, fmt.Errorf("acquire business lock: %w", err)
	}
	defer release()

	return o.rebuild(ctx, business, slog.With("business", business))
}

// rebuild is Rebuild without the lock; the caller holds it.
func (o *Orchestrator) rebuild(ctx context.Context, business string, log *slog.Logger) (*v1.RebuildSummary, error) {
	log.Info("[Cycle] Rebuilding aggregates from orders")

	opCtx, cancel := o.storeCtx(ctx)
	orders, err := o.store.ListOrders(opCtx, business)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	opCtx, cancel = o.storeCtx(ctx)
	stored, err := o.store.ListAggregates(opCtx, business)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("list aggregates: %w", err)
	}

	acc := aggregation.NewAccumulator(business, nil)
	for _, ord := range orders {
		acc.Fold(ord, aggregation.KeysFor(ord.Timestamp))
	}

	rebuilt := acc.Aggregates()
	have := make(map[string]struct{}, len(rebuilt))
	for _, agg := range rebuilt {
		have[agg.ID] = struct{}{}
	}
	for _, agg := range stored {
		if _, ok := have[agg.ID]; !ok {
			rebuilt = append(rebuilt, aggregation.NewAggregate(business, agg.PeriodType, agg.Period))
		}
	}

	summary := &v1.RebuildSummary{
		Business:         business,
		OrderCount:       len(orders),
		Aggregates:       len(rebuilt),
		FailedAggregates: o.upsertAll(ctx, log, rebuilt),
	}

	log.Info("[Cycle] Rebuild complete",
		"orders", summary.OrderCount,
		"aggregates", summary.Aggregates,
		"failed_aggregates", len(summary.FailedAggregates),
	)
	return summary, nil
}
