package aggregation

import "time"

// Record types stored alongside each document. Every query filters on one of these.
const (
	RecordTypeOrder      = "order"
	RecordTypeTimeReport = "timeReport"
	RecordTypeProfile    = "profile"
)

// PeriodType is the granularity of a running aggregate.
type PeriodType string

const (
	PeriodDay   PeriodType = "day"
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
	PeriodYear  PeriodType = "year"
)

// PeriodTypes lists every granularity in fold order.
var PeriodTypes = []PeriodType{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// ValidPeriodType reports whether p is one of the four supported granularities.
func ValidPeriodType(p string) bool {
	for _, pt := range PeriodTypes {
		if string(pt) == p {
			return true
		}
	}
	return false
}

// OrderItem is one sold line item inside an Order.
type OrderItem struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"` // minor currency units
}

// Order groups every purchase row that shares one upstream transaction id.
// Orders are immutable once built and persisted exactly once.
type Order struct {
	// ID is generated by us and never equals the upstream transaction id,
	// so two devices reusing the same transaction id cannot collide.
	ID         string      `json:"id"`
	OrderID    string      `json:"orderId"`
	Email      string      `json:"email,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Items      []OrderItem `json:"items"`
	TotalPrice int64       `json:"totalPrice"` // minor currency units
	Business   string      `json:"business"`
	RecordType string      `json:"recordType"`
}

// Aggregate is the running total for one (business, periodType, period) triple.
//
// Invariants: OrderCount == len(ProcessedTransactions), and TotalRevenue is the sum
// of TotalPrice over the orders listed in ProcessedTransactions.
type Aggregate struct {
	ID                    string           `json:"id"` // "{periodType}-{period}"
	PeriodType            PeriodType       `json:"periodType"`
	Period                string           `json:"period"`
	Business              string           `json:"business"`
	TotalRevenue          int64            `json:"totalRevenue"` // minor currency units, never rescaled
	OrderCount            int64            `json:"orderCount"`
	ItemsSold             map[string]int64 `json:"itemsSold"`
	UniqueCustomers       []string         `json:"uniqueCustomers"`
	ProcessedTransactions []string         `json:"processedTransactions"`
	RecordType            string           `json:"recordType"`
}

// NewAggregate returns a zero-valued aggregate for one period bucket.
func NewAggregate(business string, periodType PeriodType, period string) *Aggregate {
	return &Aggregate{
		ID:                    CompositeID(periodType, period),
		PeriodType:            periodType,
		Period:                period,
		Business:              business,
		ItemsSold:             map[string]int64{},
		UniqueCustomers:       []string{},
		ProcessedTransactions: []string{},
		RecordType:            RecordTypeTimeReport,
	}
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (a *Aggregate) Clone() *Aggregate {
	if a == nil {
		return nil
	}
	c := *a
	c.ItemsSold = make(map[string]int64, len(a.ItemsSold))
	for k, v := range a.ItemsSold {
		c.ItemsSold[k] = v
	}
	c.UniqueCustomers = append([]string{}, a.UniqueCustomers...)
	c.ProcessedTransactions = append([]string{}, a.ProcessedTransactions...)
	return &c
}

// Profile maps a verified user identity to its business partition and device.
// Profiles are owned by the profile CRUD layer; the engine only reads them.
type Profile struct {
	ID         string `json:"id"` // user uid
	Business   string `json:"business"`
	DeviceID   string `json:"deviceId"`
	Name       string `json:"name,omitempty"`
	RecordType string `json:"recordType"`
}
