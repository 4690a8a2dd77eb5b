package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/tillsync/internal/api/v1"
	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// ErrMalformedRow marks a purchase row that was dropped at the boundary.
var ErrMalformedRow = errors.New("malformed purchase row")

// maxEpochMillis is the largest representable instant, +/-100,000,000 days around 1970.
var maxEpochMillis = decimal.NewFromInt(8_640_000_000_000_000)

// RowSkip records one dropped row for logging and the cycle summary.
type RowSkip struct {
	Index         int    `json:"index"`
	TransactionID string `json:"transactionId,omitempty"`
	Reason        string `json:"reason"`
}

// GroupResult is the output of GroupOrders.
type GroupResult struct {
	Orders  []*aggregation.Order
	Skipped []RowSkip
}

// GroupOrders groups raw purchase rows into one Order per transaction id.
//
// Orders come out in the order their transaction id was first seen. The first row of a
// transaction seeds the order's email and timestamp; every row adds one item and its
// price to the total. Rows that cannot be normalized are skipped and logged, never
// returned as an error. Negative quantities and prices are kept as reported.
func GroupOrders(rows []v1.RawPurchaseRow, business string, newID func() string) GroupResult {
	res := GroupResult{Orders: make([]*aggregation.Order, 0)}
	byTxn := make(map[string]*aggregation.Order)

	for i, raw := range rows {
		row, err := normalizeRow(raw)
		if err != nil {
			skip := RowSkip{Index: i, TransactionID: row.transactionID, Reason: err.Error()}
			res.Skipped = append(res.Skipped, skip)
			slog.Warn("[Grouper] Skipping malformed purchase row",
				"business", business,
				"index", i,
				"transaction_id", row.transactionID,
				"error", err,
			)
			continue
		}

		order, ok := byTxn[row.transactionID]
		if !ok {
			order = &aggregation.Order{
				ID:         newID(),
				OrderID:    row.transactionID,
				Email:      raw.Email,
				Timestamp:  row.timestamp,
				Items:      []aggregation.OrderItem{},
				Business:   business,
				RecordType: aggregation.RecordTypeOrder,
			}
			byTxn[row.transactionID] = order
			res.Orders = append(res.Orders, order)
		}

		order.Items = append(order.Items, aggregation.OrderItem{
			Item:     raw.Item,
			Quantity: row.quantity,
			Price:    row.price,
		})
		order.TotalPrice += row.price
	}

	return res
}

type normalizedRow struct {
	transactionID string
	timestamp     time.Time
	quantity      int64
	price         int64
}

// normalizeRow turns the loosely typed wire row into explicit values. On failure the
// returned row still carries the transaction id when it could be read.
func normalizeRow(raw v1.RawPurchaseRow) (normalizedRow, error) {
	var row normalizedRow

	id, err := parseTransactionID(raw.TransactionRef())
	if err != nil {
		return row, err
	}
	row.transactionID = id

	if row.timestamp, err = ParseTimestamp(raw.Timestamp); err != nil {
		return row, err
	}
	if row.quantity, err = parseInteger(raw.Quantity, "quantity"); err != nil {
		return row, err
	}
	if row.price, err = parseInteger(raw.Price, "price"); err != nil {
		return row, err
	}
	return row, nil
}

// ParseTimestamp reads an epoch-millisecond timestamp given as a JSON number or a
// numeric string. A fractional part is truncated to whole milliseconds.
func ParseTimestamp(raw json.RawMessage) (time.Time, error) {
	d, err := numericValue(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %s", ErrMalformedRow, describe(raw))
	}
	d = d.Truncate(0)
	if d.Abs().GreaterThan(maxEpochMillis) {
		return time.Time{}, fmt.Errorf("%w: timestamp %s out of range", ErrMalformedRow, describe(raw))
	}
	return time.UnixMilli(d.IntPart()).UTC(), nil
}

func parseInteger(raw json.RawMessage, field string) (int64, error) {
	d, err := numericValue(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s", ErrMalformedRow, field, describe(raw))
	}
	if !d.IsInteger() || !d.Equal(decimal.NewFromInt(d.IntPart())) {
		return 0, fmt.Errorf("%w: %s %s is not an integer", ErrMalformedRow, field, describe(raw))
	}
	return d.IntPart(), nil
}

func parseTransactionID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("%w: missing transaction id", ErrMalformedRow)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", fmt.Errorf("%w: transaction id %s", ErrMalformedRow, describe(raw))
		}
		return s, nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: transaction id %s", ErrMalformedRow, describe(raw))
	}
	return d.String(), nil
}

// numericValue accepts a JSON number or a JSON string holding a number.
func numericValue(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, errors.New("missing")
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
		text = string(bytes.TrimSpace([]byte(s)))
	}
	if text == "" {
		return decimal.Zero, errors.New("empty")
	}
	return decimal.NewFromString(text)
}

func describe(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "<missing>"
	}
	return string(raw)
}
