package aggregation

import (
	"strconv"
	"time"
)

// PeriodKeys holds the four bucket identifiers of one instant.
type PeriodKeys struct {
	Day   string
	Week  string
	Month string
	Year  string
}

// KeysFor maps a timestamp to its day, week, month and year buckets (UTC).
//
// The week number is ceil((daysSinceJan1 + weekdayOfJan1 + 1) / 7) with Sunday = 0.
// This is not ISO-8601 week numbering (there is no year-boundary correction) and
// stored report ids depend on it, so it must stay exactly as is.
func KeysFor(ts time.Time) PeriodKeys {
	t := ts.UTC()
	year := t.Format("2006")
	return PeriodKeys{
		Day:   t.Format("2006-01-02"),
		Week:  year + "-W" + strconv.Itoa(weekOfYear(t)),
		Month: t.Format("2006-01"),
		Year:  year,
	}
}

func weekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	n := (t.YearDay() - 1) + int(jan1.Weekday()) + 1
	return (n + 6) / 7
}

// Key returns the bucket identifier for one period type.
func (k PeriodKeys) Key(p PeriodType) string {
	switch p {
	case PeriodDay:
		return k.Day
	case PeriodWeek:
		return k.Week
	case PeriodMonth:
		return k.Month
	case PeriodYear:
		return k.Year
	}
	return ""
}

// Each calls fn for every period type in fold order.
func (k PeriodKeys) Each(fn func(p PeriodType, key string)) {
	for _, p := range PeriodTypes {
		fn(p, k.Key(p))
	}
}

// CompositeIDs returns the four aggregate ids this instant resolves to.
func (k PeriodKeys) CompositeIDs() []string {
	ids := make([]string, 0, len(PeriodTypes))
	k.Each(func(p PeriodType, key string) {
		ids = append(ids, CompositeID(p, key))
	})
	return ids
}

// CompositeID builds the aggregate identity, unique within a business partition.
func CompositeID(p PeriodType, key string) string {
	return string(p) + "-" + key
}
