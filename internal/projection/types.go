package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportQueryRequest selects the time reports of one business.
type ReportQueryRequest struct {
	Business   string
	PeriodType string `form:"periodType"` // empty means every granularity
	From       string `form:"from"`       // inclusive period key, requires PeriodType
	To         string `form:"to"`         // inclusive period key, requires PeriodType
}

// ReportValue is one aggregate as served to clients. Money is reported both in the
// stored minor units and rendered in major units.
type ReportValue struct {
	ID                     string           `json:"id"`
	PeriodType             string           `json:"periodType"`
	Period                 string           `json:"period"`
	TotalRevenue           int64            `json:"totalRevenue"`
	TotalRevenueMajor      decimal.Decimal  `json:"totalRevenueMajor"`
	OrderCount             int64            `json:"orderCount"`
	AverageOrderValueMajor decimal.Decimal  `json:"averageOrderValueMajor"`
	ItemsSold              map[string]int64 `json:"itemsSold"`
	UniqueCustomers        int              `json:"uniqueCustomers"`
}

// ReportTotals sums the returned reports of a single granularity.
type ReportTotals struct {
	Revenue           int64           `json:"revenue"`
	RevenueMajor      decimal.Decimal `json:"revenueMajor"`
	Orders            int64           `json:"orders"`
	AverageOrderMajor decimal.Decimal `json:"averageOrderMajor"`
}

// ReportQueryResponse is the body of GET /v1/reports.
type ReportQueryResponse struct {
	Business   string        `json:"business"`
	PeriodType string        `json:"periodType,omitempty"`
	Values     []ReportValue `json:"values"`
	Totals     *ReportTotals `json:"totals,omitempty"`
}

// OrderView is one stored order as served to clients.
type OrderView struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"orderId"`
	Email           string          `json:"email,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	Items           []OrderLine     `json:"items"`
	TotalPrice      int64           `json:"totalPrice"`
	TotalPriceMajor decimal.Decimal `json:"totalPriceMajor"`
}

// OrderLine is one item of an OrderView.
type OrderLine struct {
	Item     string `json:"item"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// OrderListResponse is the body of GET /v1/orders.
type OrderListResponse struct {
	Business string      `json:"business"`
	Orders   []OrderView `json:"orders"`
}
