package aggregation

import "sort"

// Accumulator holds the in-memory running aggregates of one ingestion cycle for one
// business. It is seeded lazily from the aggregates persisted before the cycle started
// and flushed afterwards with a full-document upsert per aggregate.
//
// Folding is additive: folding the same order twice counts it twice. Deduplication is
// the caller's job and happens before orders reach the accumulator.
type Accumulator struct {
	business  string
	persisted map[string]*Aggregate
	touched   map[string]*Aggregate
	customers map[string]map[string]struct{}
}

// NewAccumulator creates an accumulator for business. persisted holds the previously
// stored aggregates keyed by composite id; entries are copied before being mutated.
func NewAccumulator(business string, persisted map[string]*Aggregate) *Accumulator {
	if persisted == nil {
		persisted = map[string]*Aggregate{}
	}
	return &Accumulator{
		business:  business,
		persisted: persisted,
		touched:   make(map[string]*Aggregate),
		customers: make(map[string]map[string]struct{}),
	}
}

// Fold merges one order into its four period aggregates.
func (a *Accumulator) Fold(order *Order, keys PeriodKeys) {
	keys.Each(func(p PeriodType, key string) {
		agg := a.entry(p, key)

		agg.TotalRevenue += order.TotalPrice
		agg.OrderCount++

		for _, it := range order.Items {
			agg.ItemsSold[it.Item] += it.Quantity
		}

		if order.Email != "" {
			seen := a.customers[agg.ID]
			if _, ok := seen[order.Email]; !ok {
				seen[order.Email] = struct{}{}
				agg.UniqueCustomers = append(agg.UniqueCustomers, order.Email)
			}
		}

		agg.ProcessedTransactions = append(agg.ProcessedTransactions, order.OrderID)
	})
}

// entry returns the working aggregate for one bucket, seeding it on first use.
func (a *Accumulator) entry(p PeriodType, key string) *Aggregate {
	id := CompositeID(p, key)
	if agg, ok := a.touched[id]; ok {
		return agg
	}

	var agg *Aggregate
	if prev, ok := a.persisted[id]; ok && prev != nil {
		agg = prev.Clone()
		normalize(agg, a.business, p, key)
	} else {
		agg = NewAggregate(a.business, p, key)
	}

	seen := make(map[string]struct{}, len(agg.UniqueCustomers))
	for _, email := range agg.UniqueCustomers {
		seen[email] = struct{}{}
	}

	a.touched[id] = agg
	a.customers[id] = seen
	return agg
}

// normalize repairs identity fields and nil collections on documents read back from
// the store, which may have been written by older revisions.
func normalize(agg *Aggregate, business string, p PeriodType, key string) {
	agg.ID = CompositeID(p, key)
	agg.Business = business
	agg.PeriodType = p
	agg.Period = key
	agg.RecordType = RecordTypeTimeReport
	if agg.ItemsSold == nil {
		agg.ItemsSold = map[string]int64{}
	}
	if agg.UniqueCustomers == nil {
		agg.UniqueCustomers = []string{}
	}
	if agg.ProcessedTransactions == nil {
		agg.ProcessedTransactions = []string{}
	}
}

// Aggregates returns every aggregate touched by this cycle, sorted by id.
func (a *Accumulator) Aggregates() []*Aggregate {
	out := make([]*Aggregate, 0, len(a.touched))
	for _, agg := range a.touched {
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports how many aggregates this cycle touched.
func (a *Accumulator) Len() int {
	return len(a.touched)
}

// RequiredIDs returns the sorted set of composite ids the given orders fold into,
// so every persisted aggregate a cycle needs can be fetched in one query.
func RequiredIDs(orders []*Order) []string {
	set := make(map[string]struct{})
	for _, o := range orders {
		for _, id := range KeysFor(o.Timestamp).CompositeIDs() {
			set[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
