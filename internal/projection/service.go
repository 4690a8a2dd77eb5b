package projection

import (
	"context"
	"errors"
	"fmt"

	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/gin-gonic/gin"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid report query")

// Reader is the read side of the document store used for reports.
type Reader interface {
	ListAggregates(ctx context.Context, business string) ([]*aggregation.Aggregate, error)
	ListOrders(ctx context.Context, business string) ([]*aggregation.Order, error)
}

// Service implements the report query layer over stored aggregates and orders.
type Service struct {
	store Reader
	auth  gin.HandlerFunc
}

// NewService creates a new projection service. auth resolves the caller's tenant.
func NewService(store Reader, auth gin.HandlerFunc) *Service {
	return &Service{store: store, auth: auth}
}

// ListAggregates returns every aggregate of business with the given record type.
// Only time reports are aggregates; any other record type is an invalid query.
func (s *Service) ListAggregates(ctx context.Context, business, recordType string) ([]*aggregation.Aggregate, error) {
	if business == "" {
		return nil, invalidQueryf("business is required")
	}
	if recordType != aggregation.RecordTypeTimeReport {
		return nil, invalidQueryf("unsupported recordType %q (must be %s)", recordType, aggregation.RecordTypeTimeReport)
	}

	aggs, err := s.store.ListAggregates(ctx, business)
	if err != nil {
		return nil, fmt.Errorf("list aggregates: %w", err)
	}

	out := make([]*aggregation.Aggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.RecordType == recordType {
			out = append(out, agg)
		}
	}
	return out, nil
}

// QueryReports returns the business's time reports, optionally narrowed to one
// granularity and an inclusive period range.
func (s *Service) QueryReports(ctx context.Context, req ReportQueryRequest) (*ReportQueryResponse, error) {
	from, to, err := validate(req)
	if err != nil {
		return nil, err
	}

	aggs, err := s.ListAggregates(ctx, req.Business, aggregation.RecordTypeTimeReport)
	if err != nil {
		return nil, err
	}

	values := make([]ReportValue, 0, len(aggs))
	for _, agg := range aggs {
		if req.PeriodType != "" && string(agg.PeriodType) != req.PeriodType {
			continue
		}
		if from != "" || to != "" {
			key, err := periodSortKey(agg.PeriodType, agg.Period)
			if err != nil || (from != "" && key < from) || (to != "" && key > to) {
				continue
			}
		}
		values = append(values, toReportValue(agg))
	}
	sortReports(values)

	resp := &ReportQueryResponse{
		Business:   req.Business,
		PeriodType: req.PeriodType,
		Values:     values,
	}
	if req.PeriodType != "" {
		resp.Totals = totals(values)
	}
	return resp, nil
}

// ListOrders returns every order of business, oldest first.
func (s *Service) ListOrders(ctx context.Context, business string) (*OrderListResponse, error) {
	if business == "" {
		return nil, invalidQueryf("business is required")
	}

	orders, err := s.store.ListOrders(ctx, business)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		lines := make([]OrderLine, len(o.Items))
		for i, it := range o.Items {
			lines[i] = OrderLine{Item: it.Item, Quantity: it.Quantity, Price: it.Price}
		}
		views = append(views, OrderView{
			ID:              o.ID,
			OrderID:         o.OrderID,
			Email:           o.Email,
			Timestamp:       o.Timestamp,
			Items:           lines,
			TotalPrice:      o.TotalPrice,
			TotalPriceMajor: toMajor(o.TotalPrice),
		})
	}
	return &OrderListResponse{Business: business, Orders: views}, nil
}

// validate checks the request and returns the normalized range bounds.
func validate(req ReportQueryRequest) (string, string, error) {
	if req.Business == "" {
		return "", "", invalidQueryf("business is required")
	}
	if req.PeriodType != "" && !aggregation.ValidPeriodType(req.PeriodType) {
		return "", "", invalidQueryf("invalid periodType: %s (must be day, week, month, or year)", req.PeriodType)
	}
	if (req.From != "" || req.To != "") && req.PeriodType == "" {
		return "", "", invalidQueryf("from/to require periodType")
	}

	p := aggregation.PeriodType(req.PeriodType)
	var from, to string
	var err error
	if req.From != "" {
		if from, err = periodSortKey(p, req.From); err != nil {
			return "", "", invalidQueryf("from: %v", err)
		}
	}
	if req.To != "" {
		if to, err = periodSortKey(p, req.To); err != nil {
			return "", "", invalidQueryf("to: %v", err)
		}
	}
	if from != "" && to != "" && from > to {
		return "", "", invalidQueryf("from must not be after to")
	}
	return from, to, nil
}

func toReportValue(agg *aggregation.Aggregate) ReportValue {
	items := agg.ItemsSold
	if items == nil {
		items = map[string]int64{}
	}
	return ReportValue{
		ID:                     agg.ID,
		PeriodType:             string(agg.PeriodType),
		Period:                 agg.Period,
		TotalRevenue:           agg.TotalRevenue,
		TotalRevenueMajor:      toMajor(agg.TotalRevenue),
		OrderCount:             agg.OrderCount,
		AverageOrderValueMajor: averageMajor(agg.TotalRevenue, agg.OrderCount),
		ItemsSold:              items,
		UniqueCustomers:        len(agg.UniqueCustomers),
	}
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
