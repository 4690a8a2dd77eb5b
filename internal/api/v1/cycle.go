package v1

// CycleSummary reports the outcome of one aggregation cycle for one business.
type CycleSummary struct {
	Business string `json:"business"`

	// OrderCount is the number of new orders persisted and folded this cycle.
	OrderCount int `json:"orderCount"`

	// PeriodsTouched is the number of distinct aggregates updated.
	PeriodsTouched int `json:"periodsTouched"`

	RowsFetched     int `json:"rowsFetched"`
	RowsSkipped     int `json:"rowsSkipped"`
	DuplicateOrders int `json:"duplicateOrders"`

	// FailedAggregates lists composite ids whose upsert failed and are stale until rebuilt.
	FailedAggregates []string `json:"failedAggregates"`

	// Repaired is true when redelivered orders were missing from their aggregates and the
	// business was rebuilt from its stored orders.
	Repaired bool `json:"repaired"`

	// Acknowledged is true once the device confirmed its buffer was cleared.
	Acknowledged bool `json:"acknowledged"`
}

// RebuildSummary reports a from-scratch recomputation of a business's aggregates.
type RebuildSummary struct {
	Business         string   `json:"business"`
	OrderCount       int      `json:"orderCount"`
	Aggregates       int      `json:"aggregates"`
	FailedAggregates []string `json:"failedAggregates"`
}
