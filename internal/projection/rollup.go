package projection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// minorUnitExponent converts stored minor currency units (cents) to major units.
const minorUnitExponent = -2

func toMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, minorUnitExponent)
}

// averageMajor divides revenue by count in major units, rounded to the minor unit.
func averageMajor(revenue, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return toMajor(revenue).Div(decimal.NewFromInt(count)).Round(-minorUnitExponent)
}

// periodSortKey makes period keys of one granularity sort chronologically as strings.
// Week numbers are zero-padded so "2025-W3" sorts before "2025-W10".
func periodSortKey(periodType aggregation.PeriodType, period string) (string, error) {
	if periodType != aggregation.PeriodWeek {
		return period, nil
	}
	year, week, ok := strings.Cut(period, "-W")
	if !ok {
		return "", fmt.Errorf("malformed week key %q", period)
	}
	n, err := strconv.Atoi(week)
	if err != nil || n < 1 || n > 54 {
		return "", fmt.Errorf("malformed week key %q", period)
	}
	return fmt.Sprintf("%s-W%02d", year, n), nil
}

// sortReports orders reports by granularity (day, week, month, year) and then
// chronologically within each granularity.
func sortReports(values []ReportValue) {
	rank := make(map[string]int, len(aggregation.PeriodTypes))
	for i, p := range aggregation.PeriodTypes {
		rank[string(p)] = i
	}

	sortKey := func(v ReportValue) string {
		k, err := periodSortKey(aggregation.PeriodType(v.PeriodType), v.Period)
		if err != nil {
			return v.Period
		}
		return k
	}

	sort.SliceStable(values, func(i, j int) bool {
		ri, rj := rank[values[i].PeriodType], rank[values[j].PeriodType]
		if ri != rj {
			return ri < rj
		}
		return sortKey(values[i]) < sortKey(values[j])
	})
}

// totals sums reports that all share one granularity.
func totals(values []ReportValue) *ReportTotals {
	t := &ReportTotals{}
	for _, v := range values {
		t.Revenue += v.TotalRevenue
		t.Orders += v.OrderCount
	}
	t.RevenueMajor = toMajor(t.Revenue)
	t.AverageOrderMajor = averageMajor(t.Revenue, t.Orders)
	return t
}
